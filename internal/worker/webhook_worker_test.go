package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
)

type fakeSender struct {
	sent []interface{}
	err  error
}

func (f *fakeSender) Send(ctx context.Context, payload interface{}) error {
	f.sent = append(f.sent, payload)
	return f.err
}

func webhookTask(t *testing.T) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(service.WebhookPayload{
		Campaign: &model.Campaign{ID: "c-1"},
		Asset:    &model.AssetSet{ID: "a-1", CampaignID: "c-1"},
	})
	require.NoError(t, err)
	return asynq.NewTask(service.TaskTypeWebhook, data)
}

func TestWebhookWorker_Delivers(t *testing.T) {
	sender := &fakeSender{}
	w := NewWebhookWorker(sender, nil)

	require.NoError(t, w.ProcessTask(context.Background(), webhookTask(t)))
	require.Len(t, sender.sent, 1)
	payload := sender.sent[0].(*service.WebhookPayload)
	assert.Equal(t, "a-1", payload.Asset.ID)
}

func TestWebhookWorker_DeliveryErrorIsRetried(t *testing.T) {
	w := NewWebhookWorker(&fakeSender{err: errors.New("down")}, nil)

	err := w.ProcessTask(context.Background(), webhookTask(t))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestWebhookWorker_Disabled(t *testing.T) {
	w := NewWebhookWorker(nil, nil)
	assert.NoError(t, w.ProcessTask(context.Background(), webhookTask(t)))
}

func TestWebhookWorker_BadPayload(t *testing.T) {
	w := NewWebhookWorker(&fakeSender{}, nil)

	err := w.ProcessTask(context.Background(), asynq.NewTask(service.TaskTypeWebhook, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
