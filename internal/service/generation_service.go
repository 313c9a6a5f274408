package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
)

var ErrJobFinished = errors.New("job already finished")

// GenerationService queues server-side generation runs and tracks their jobs
type GenerationService struct {
	jobs     JobStore
	tasks    TaskEnqueuer
	canceler TaskCanceler
	logger   *zap.Logger
	now      func() time.Time
}

func NewGenerationService(jobs JobStore, tasks TaskEnqueuer, canceler TaskCanceler, logger *zap.Logger) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		jobs:     jobs,
		tasks:    tasks,
		canceler: canceler,
		logger:   logger.Named("generations"),
		now:      time.Now,
	}
}

// Start validates the brief and queues a generation job
func (s *GenerationService) Start(ctx context.Context, p model.Principal, in model.CampaignInput) (*model.StartGenerationResponse, error) {
	if err := generation.ValidateInput(in); err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	payloadBytes, err := json.Marshal(&model.GenerationJobPayload{Principal: p, Input: in})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	job := &model.Job{
		ID:        jobID,
		Type:      model.JobTypeGeneration,
		Status:    model.JobStatusQueued,
		UserID:    p.UserID,
		Payload:   payloadBytes,
		CreatedAt: s.now(),
	}
	if err := s.jobs.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	task, err := newGenerationTask(jobID, payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// A generation is never retried automatically; the user resubmits instead
	if _, err := s.tasks.Enqueue(task,
		asynq.Queue(QueueGeneration),
		asynq.TaskID(jobID),
		asynq.MaxRetry(0),
		asynq.Retention(24*time.Hour),
	); err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	s.logger.Info("generation queued", zap.String("jobId", jobID), zap.String("userId", p.UserID))
	return &model.StartGenerationResponse{JobID: jobID, Status: model.JobStatusQueued}, nil
}

// GetStatus returns a job owned by the principal
func (s *GenerationService) GetStatus(ctx context.Context, p model.Principal, jobID string) (*model.Job, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != p.UserID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Cancel stops a queued or running job. The job is marked canceled first, so a worker that
// already picked the task up stops at its next progress update, then the task is removed
// from its queue or signaled.
func (s *GenerationService) Cancel(ctx context.Context, p model.Principal, jobID string) (*model.Job, error) {
	var prev model.JobStatus
	var canceled model.Job
	err := s.jobs.UpdateJob(ctx, jobID, func(job *model.Job) error {
		if job.UserID != p.UserID {
			return ErrJobNotFound
		}
		if job.Status.IsTerminal() {
			return ErrJobFinished
		}
		prev = job.Status
		job.Status = model.JobStatusCanceled
		now := s.now()
		job.CompletedAt = &now
		canceled = *job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stopTask(jobID, prev)
	return &canceled, nil
}

// stopTask deletes a queued task. A task a worker has already picked up cannot be deleted,
// so it is signaled instead.
func (s *GenerationService) stopTask(jobID string, prev model.JobStatus) {
	if s.canceler == nil {
		return
	}
	log := s.logger.With(zap.String("jobId", jobID))

	if prev == model.JobStatusQueued {
		err := s.canceler.DeleteTask(QueueGeneration, jobID)
		if err == nil {
			return
		}
		log.Debug("queued task not deleted, signaling instead", zap.Error(err))
	}

	if err := s.canceler.CancelProcessing(jobID); err != nil {
		log.Warn("failed to cancel task", zap.Error(err))
	}
}

// UpdateJobProgress records a step (called by worker). It returns ErrJobFinished once the
// job is terminal, which tells a worker of a canceled job to stop.
func (s *GenerationService) UpdateJobProgress(ctx context.Context, jobID string, step generation.Step) error {
	return s.jobs.UpdateJob(ctx, jobID, func(job *model.Job) error {
		if job.Status.IsTerminal() {
			return ErrJobFinished
		}

		job.Progress = step.Progress
		job.CurrentStep = step.Label
		job.Steps = append(job.Steps, step.Label)
		if step.CampaignID != "" {
			job.CampaignID = step.CampaignID
		}
		if job.Status == model.JobStatusQueued {
			job.Status = model.JobStatusRunning
			now := s.now()
			job.StartedAt = &now
		}
		return nil
	})
}

// CompleteJob marks job as succeeded (called by worker)
func (s *GenerationService) CompleteJob(ctx context.Context, jobID, campaignID string) error {
	return s.finish(ctx, jobID, func(job *model.Job) {
		job.Status = model.JobStatusSucceeded
		job.Progress = 100
		job.CurrentStep = generation.LabelCompleted
		job.CampaignID = campaignID
	})
}

// FailJob marks job as failed (called by worker)
func (s *GenerationService) FailJob(ctx context.Context, jobID, campaignID, stage, errMsg string) error {
	return s.finish(ctx, jobID, func(job *model.Job) {
		job.Status = model.JobStatusFailed
		job.CurrentStep = errMsg
		job.FailedStage = stage
		job.Error = &errMsg
		if campaignID != "" {
			job.CampaignID = campaignID
		}
	})
}

// MarkCanceled records a cancellation observed by the worker
func (s *GenerationService) MarkCanceled(ctx context.Context, jobID string) error {
	return s.finish(ctx, jobID, func(job *model.Job) {
		job.Status = model.JobStatusCanceled
	})
}

// finish moves a job to a terminal status; jobs already terminal are left alone
func (s *GenerationService) finish(ctx context.Context, jobID string, apply func(*model.Job)) error {
	err := s.jobs.UpdateJob(ctx, jobID, func(job *model.Job) error {
		if job.Status.IsTerminal() {
			return ErrJobFinished
		}
		apply(job)
		now := s.now()
		job.CompletedAt = &now
		if job.StartedAt == nil {
			job.StartedAt = &now
		}
		return nil
	})
	if errors.Is(err, ErrJobFinished) {
		return nil
	}
	return err
}
