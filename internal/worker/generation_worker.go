package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/pkg/response"
)

// JobTracker records job progress, satisfied by *service.GenerationService
type JobTracker interface {
	UpdateJobProgress(ctx context.Context, jobID string, step generation.Step) error
	CompleteJob(ctx context.Context, jobID, campaignID string) error
	FailJob(ctx context.Context, jobID, campaignID, stage, errMsg string) error
	MarkCanceled(ctx context.Context, jobID string) error
}

// Broadcaster pushes job messages to websocket subscribers, satisfied by *websocket.Hub
type Broadcaster interface {
	BroadcastProgress(msg model.WSProgressMessage)
	BroadcastComplete(jobID string, result interface{})
	BroadcastError(jobID, code, message, stage string)
}

// GenerationWorker runs the orchestrator for queued generation jobs
type GenerationWorker struct {
	orchestrator *generation.Orchestrator
	jobs         JobTracker
	hub          Broadcaster
	logger       *zap.Logger
}

// NewGenerationWorker creates a new generation worker
func NewGenerationWorker(orchestrator *generation.Orchestrator, jobs JobTracker, hub Broadcaster, logger *zap.Logger) *GenerationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationWorker{
		orchestrator: orchestrator,
		jobs:         jobs,
		hub:          hub,
		logger:       logger.Named("generation"),
	}
}

// ProcessTask handles generation task processing
func (w *GenerationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload service.GenerationTaskPayload
	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %v: %w", err, asynq.SkipRetry)
	}

	jobID := taskPayload.JobID
	log := w.logger.With(zap.String("jobId", jobID))
	// Job bookkeeping must outlive a canceled run
	bookCtx := context.WithoutCancel(ctx)

	var payload model.GenerationJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.fail(bookCtx, log, jobID, "", "", response.CodeJobFailed, "Invalid payload")
		return fmt.Errorf("failed to unmarshal generation payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info("starting generation job", zap.String("userId", payload.Principal.UserID))

	// canceled from the job record as well as from asynq
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	observer := func(e generation.Event) {
		if e.Kind == generation.EventFailed || e.Kind == generation.EventCompleted {
			return
		}
		step := generation.Describe(e)
		if err := w.jobs.UpdateJobProgress(bookCtx, jobID, step); err != nil {
			if errors.Is(err, service.ErrJobFinished) {
				log.Info("job finished elsewhere, stopping run")
				stop()
				return
			}
			log.Warn("failed to update job progress", zap.Error(err))
		}
		w.hub.BroadcastProgress(model.NewProgressMessage(jobID, step.Progress, step.Label, step.Stage, step.CampaignID))
	}

	campaign, err := w.orchestrator.Run(runCtx, payload.Principal, payload.Input, observer)
	if err == nil {
		if cerr := w.jobs.CompleteJob(bookCtx, jobID, campaign.ID); cerr != nil {
			log.Warn("failed to complete job", zap.Error(cerr))
		}
		w.hub.BroadcastComplete(jobID, campaign)
		log.Info("generation job completed", zap.String("campaignId", campaign.ID))
		return nil
	}

	var failure *generation.GenerationFailure
	var campaignID, stage string
	if errors.As(err, &failure) {
		campaignID, stage = failure.CampaignID, failure.Stage
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if merr := w.jobs.MarkCanceled(bookCtx, jobID); merr != nil {
			log.Warn("failed to mark job canceled", zap.Error(merr))
		}
		w.hub.BroadcastError(jobID, response.CodeJobFailed, "Generation canceled.", stage)
		log.Info("generation job canceled", zap.String("stage", stage))
		return err
	}

	w.fail(bookCtx, log, jobID, campaignID, stage, errorCode(err), err.Error())
	return fmt.Errorf("generation failed: %w: %w", err, asynq.SkipRetry)
}

func (w *GenerationWorker) fail(ctx context.Context, log *zap.Logger, jobID, campaignID, stage, code, msg string) {
	if err := w.jobs.FailJob(ctx, jobID, campaignID, stage, msg); err != nil {
		log.Warn("failed to mark job failed", zap.Error(err))
	}
	w.hub.BroadcastError(jobID, code, msg, stage)
	log.Warn("generation job failed",
		zap.String("campaignId", campaignID),
		zap.String("stage", stage),
		zap.String("code", code),
		zap.String("error", msg),
	)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, generation.ErrStageFailed):
		return response.CodeStageFailed
	case errors.Is(err, generation.ErrStageTimedOut):
		return response.CodeStageTimeout
	case errors.Is(err, generation.ErrStoreUnavailable):
		return response.CodeStoreUnavailable
	case errors.Is(err, generation.ErrValidation):
		return response.CodeValidationError
	}
	return response.CodeJobFailed
}
