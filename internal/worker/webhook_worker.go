package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/internal/client"
	"github.com/genaimarketing/api/internal/service"
)

// WebhookWorker delivers campaign creation notifications
type WebhookWorker struct {
	sender client.WebhookSender
	logger *zap.Logger
}

// NewWebhookWorker creates a webhook worker. A nil sender drops every notification.
func NewWebhookWorker(sender client.WebhookSender, logger *zap.Logger) *WebhookWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookWorker{sender: sender, logger: logger.Named("webhook")}
}

// ProcessTask posts the payload. Delivery errors are returned so asynq retries them.
func (w *WebhookWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload service.WebhookPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal webhook payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Campaign == nil {
		return fmt.Errorf("webhook payload without campaign: %w", asynq.SkipRetry)
	}

	log := w.logger.With(zap.String("campaignId", payload.Campaign.ID))
	if w.sender == nil {
		log.Debug("webhook disabled, dropping notification")
		return nil
	}

	if err := w.sender.Send(ctx, &payload); err != nil {
		log.Warn("webhook delivery failed", zap.Error(err))
		return err
	}
	log.Info("webhook delivered")
	return nil
}
