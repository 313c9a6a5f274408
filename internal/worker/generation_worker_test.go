package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/internal/store"
	"github.com/genaimarketing/api/pkg/response"
)

var (
	alice = model.Principal{UserID: "user-alice"}

	brief = model.CampaignInput{
		Name:           "Spring Sale",
		Theme:          "Travel Rewards",
		TargetAudience: "Students (18-24 years old)",
	}
)

// instantPipeline answers every generating write right away, with "error" for the field in fail
type instantPipeline struct {
	*store.Memory
	fail string
}

func (r *instantPipeline) CreateCampaign(ctx context.Context, p model.Principal, in model.CampaignInput) (*model.Campaign, error) {
	return r.Memory.CreateCampaign(ctx, p, model.NewCampaign(in))
}

func (r *instantPipeline) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	c, err := r.Memory.UpdateCampaign(ctx, p, id, patch)
	if err != nil {
		return nil, err
	}
	answer := model.Fields{}
	for k, v := range patch {
		if v != string(model.StageStatusGenerating) {
			continue
		}
		answer[k] = string(model.StageStatusCompleted)
		if k == r.fail {
			answer[k] = string(model.StageStatusError)
		}
	}
	if len(answer) > 0 {
		return r.Memory.UpdateCampaign(ctx, p, id, answer)
	}
	return c, nil
}

type trackerCall struct {
	method string
	step   generation.Step
	stage  string
	msg    string
}

type fakeTracker struct {
	mu    sync.Mutex
	calls []trackerCall
	// progress updates after this many are refused as if the job had been canceled; 0 never refuses
	refuseAfter int
	updates     int
}

func (f *fakeTracker) record(c trackerCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeTracker) UpdateJobProgress(ctx context.Context, jobID string, step generation.Step) error {
	f.mu.Lock()
	f.updates++
	refused := f.refuseAfter > 0 && f.updates > f.refuseAfter
	f.mu.Unlock()
	if refused {
		return service.ErrJobFinished
	}
	f.record(trackerCall{method: "progress", step: step})
	return nil
}

func (f *fakeTracker) CompleteJob(ctx context.Context, jobID, campaignID string) error {
	f.record(trackerCall{method: "complete"})
	return nil
}

func (f *fakeTracker) FailJob(ctx context.Context, jobID, campaignID, stage, errMsg string) error {
	f.record(trackerCall{method: "fail", stage: stage, msg: errMsg})
	return nil
}

func (f *fakeTracker) MarkCanceled(ctx context.Context, jobID string) error {
	f.record(trackerCall{method: "canceled"})
	return nil
}

func (f *fakeTracker) last() trackerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeHub struct {
	mu       sync.Mutex
	progress []model.WSProgressMessage
	complete int
	errCodes []string
}

func (h *fakeHub) BroadcastProgress(msg model.WSProgressMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = append(h.progress, msg)
}

func (h *fakeHub) BroadcastComplete(jobID string, result interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.complete++
}

func (h *fakeHub) BroadcastError(jobID, code, message, stage string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errCodes = append(h.errCodes, code)
}

func newWorker(t *testing.T, fail string, timeout time.Duration) (*GenerationWorker, *fakeTracker, *fakeHub) {
	t.Helper()
	records := &instantPipeline{Memory: store.NewMemory(), fail: fail}
	waiter := generation.NewWaiter(generation.NewPollingWatcher(records))
	orch := generation.NewOrchestrator(records, waiter, generation.Options{
		Timeout:      timeout,
		PollInterval: 5 * time.Millisecond,
	}, nil)
	tracker := &fakeTracker{}
	hub := &fakeHub{}
	return NewGenerationWorker(orch, tracker, hub, nil), tracker, hub
}

func generationTask(t *testing.T, jobID string, payload interface{}) *asynq.Task {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(service.GenerationTaskPayload{JobID: jobID, Payload: inner})
	require.NoError(t, err)
	return asynq.NewTask(service.TaskTypeGeneration, data)
}

func TestGenerationWorker_Completes(t *testing.T) {
	w, tracker, hub := newWorker(t, "", time.Second)

	err := w.ProcessTask(context.Background(), generationTask(t, "job-1", model.GenerationJobPayload{
		Principal: alice, Input: brief,
	}))
	require.NoError(t, err)

	assert.Equal(t, "complete", tracker.last().method)
	assert.Equal(t, 1, hub.complete)
	assert.Empty(t, hub.errCodes)

	// created + generating/completed for each of the five stages
	require.Len(t, hub.progress, 11)
	assert.Equal(t, generation.LabelCreating, hub.progress[0].CurrentStep)
	assert.NotEmpty(t, hub.progress[0].CampaignID)
	for i := 1; i < len(hub.progress); i++ {
		assert.GreaterOrEqual(t, hub.progress[i].Progress, hub.progress[i-1].Progress)
	}
}

func TestGenerationWorker_StageError(t *testing.T) {
	w, tracker, hub := newWorker(t, model.FieldImagesStatus, time.Second)

	err := w.ProcessTask(context.Background(), generationTask(t, "job-2", model.GenerationJobPayload{
		Principal: alice, Input: brief,
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.ErrorIs(t, err, generation.ErrStageFailed)

	last := tracker.last()
	assert.Equal(t, "fail", last.method)
	assert.Equal(t, "images", last.stage)
	assert.Equal(t, "Error in images generation.", last.msg)
	assert.Equal(t, []string{response.CodeStageFailed}, hub.errCodes)
}

func TestGenerationWorker_InvalidPayload(t *testing.T) {
	w, tracker, hub := newWorker(t, "", time.Second)

	task := asynq.NewTask(service.TaskTypeGeneration, []byte(`{"jobId":"job-3","payload":"nope"}`))
	err := w.ProcessTask(context.Background(), task)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Equal(t, "fail", tracker.last().method)
	assert.Equal(t, []string{response.CodeJobFailed}, hub.errCodes)
}

func TestGenerationWorker_Canceled(t *testing.T) {
	w, tracker, _ := newWorker(t, "", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.ProcessTask(ctx, generationTask(t, "job-4", model.GenerationJobPayload{
		Principal: alice, Input: brief,
	}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "canceled", tracker.last().method)
}

func TestGenerationWorker_StopsWhenJobCanceled(t *testing.T) {
	records := &instantPipeline{Memory: store.NewMemory()}
	waiter := generation.NewWaiter(generation.NewPollingWatcher(records))
	orch := generation.NewOrchestrator(records, waiter, generation.Options{
		Timeout:      time.Second,
		PollInterval: 5 * time.Millisecond,
	}, nil)
	tracker := &fakeTracker{refuseAfter: 1}
	hub := &fakeHub{}
	w := NewGenerationWorker(orch, tracker, hub, nil)

	err := w.ProcessTask(context.Background(), generationTask(t, "job-5", model.GenerationJobPayload{
		Principal: alice, Input: brief,
	}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "canceled", tracker.last().method)

	// only the created step went out, and the campaign never left its first stage
	require.Len(t, hub.progress, 1)
	campaigns, err := records.ListCampaigns(context.Background(), alice, store.DefaultSort)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, model.StageStatusPending, campaigns[0].CaptionsStatus)
	assert.Equal(t, model.CampaignStatusGenerating, campaigns[0].Status)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, response.CodeStageTimeout, errorCode(&generation.StageError{Kind: generation.ErrStageTimedOut}))
	assert.Equal(t, response.CodeStoreUnavailable, errorCode(store.Unavailable("get", errors.New("down"))))
	assert.Equal(t, response.CodeJobFailed, errorCode(errors.New("other")))
}
