package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/genaimarketing/api/internal/model"
)

// Records is the campaign collection as seen by the orchestrator
type Records interface {
	CampaignReader
	CreateCampaign(ctx context.Context, p model.Principal, in model.CampaignInput) (*model.Campaign, error)
	UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error)
}

// Options configures stage timing
type Options struct {
	Timeout       time.Duration
	PollInterval  time.Duration
	StageTimeouts map[string]time.Duration // keyed by stage name, overrides Timeout
}

func (o Options) timeoutFor(stage string) time.Duration {
	if d, ok := o.StageTimeouts[stage]; ok && d > 0 {
		return d
	}
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

func (o Options) pollInterval() time.Duration {
	if o.PollInterval > 0 {
		return o.PollInterval
	}
	return DefaultPollInterval
}

// EventKind names an orchestrator transition
type EventKind string

const (
	EventCreated         EventKind = "created"
	EventStageGenerating EventKind = "stage_generating"
	EventStageCompleted  EventKind = "stage_completed"
	EventCompleted       EventKind = "completed"
	EventFailed          EventKind = "failed"
)

// Event is reported to observers from the goroutine running the orchestrator
type Event struct {
	Kind       EventKind
	Stage      Stage // zero for created and completed
	StageIndex int
	CampaignID string
	Campaign   *model.Campaign // set for created and completed
	Err        error           // set for failed
}

type Observer func(Event)

// Orchestrator drives one campaign through every stage in registry order
type Orchestrator struct {
	records Records
	waiter  *Waiter
	opts    Options
	logger  *zap.Logger
}

func NewOrchestrator(records Records, waiter *Waiter, opts Options, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{records: records, waiter: waiter, opts: opts, logger: logger}
}

// Run creates a campaign and waits for every stage. Input must already be validated.
// On abort it returns a *GenerationFailure; stages completed so far are kept.
func (o *Orchestrator) Run(ctx context.Context, p model.Principal, in model.CampaignInput, observers ...Observer) (*model.Campaign, error) {
	emit := func(e Event) {
		for _, obs := range observers {
			obs(e)
		}
	}

	created, err := o.records.CreateCampaign(ctx, p, in)
	if err != nil {
		err = fmt.Errorf("create campaign: %w", err)
		emit(Event{Kind: EventFailed, Err: err})
		return nil, err
	}
	id := created.ID
	log := o.logger.With(zap.String("campaignId", id), zap.String("userId", p.UserID))
	log.Info("generation started")
	emit(Event{Kind: EventCreated, CampaignID: id, Campaign: created})

	for i, stage := range Stages() {
		emit(Event{Kind: EventStageGenerating, Stage: stage, StageIndex: i, CampaignID: id})

		if err := o.runStage(ctx, p, id, stage); err != nil {
			failure := o.abort(ctx, log, p, id, stage, err)
			emit(Event{Kind: EventFailed, Stage: stage, StageIndex: i, CampaignID: id, Err: failure})
			return nil, failure
		}

		log.Debug("stage completed", zap.String("stage", stage.Name))
		emit(Event{Kind: EventStageCompleted, Stage: stage, StageIndex: i, CampaignID: id})
	}

	if err := ctx.Err(); err != nil {
		return nil, &GenerationFailure{CampaignID: id, Err: err}
	}
	if _, err := o.records.UpdateCampaign(ctx, p, id, model.Fields{
		model.FieldStatus: string(model.CampaignStatusCompleted),
	}); err != nil {
		failure := &GenerationFailure{CampaignID: id, Err: fmt.Errorf("mark completed: %w", err)}
		emit(Event{Kind: EventFailed, StageIndex: len(stages), CampaignID: id, Err: failure})
		return nil, failure
	}

	final, err := o.records.GetCampaign(ctx, p, id)
	if err != nil {
		failure := &GenerationFailure{CampaignID: id, Err: fmt.Errorf("read final record: %w", err)}
		emit(Event{Kind: EventFailed, StageIndex: len(stages), CampaignID: id, Err: failure})
		return nil, failure
	}

	log.Info("generation completed")
	emit(Event{Kind: EventCompleted, StageIndex: len(stages), CampaignID: id, Campaign: final})
	return final, nil
}

func (o *Orchestrator) runStage(ctx context.Context, p model.Principal, id string, stage Stage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	patch := make(model.Fields, len(stage.Fields))
	for _, f := range stage.Fields {
		patch[f] = string(model.StageStatusGenerating)
	}
	if _, err := o.records.UpdateCampaign(ctx, p, id, patch); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return storeUnavailable(stage.Fields[0], err)
	}

	opts := []WaitOption{
		WithTimeout(o.opts.timeoutFor(stage.Name)),
		WithPollInterval(o.opts.pollInterval()),
	}

	if !stage.Fanned {
		return o.waiter.AwaitField(ctx, p, id, stage.Fields[0], model.StageStatusCompleted, opts...)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range stage.Fields {
		g.Go(func() error {
			return o.waiter.AwaitField(gctx, p, id, f, model.StageStatusCompleted, opts...)
		})
	}
	err := g.Wait()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// abort wraps a stage error and marks the campaign failed unless the caller canceled
func (o *Orchestrator) abort(ctx context.Context, log *zap.Logger, p model.Principal, id string, stage Stage, err error) *GenerationFailure {
	failure := &GenerationFailure{CampaignID: id, Stage: stage.Name, Field: stage.Fields[0], Err: err}
	var se *StageError
	if errors.As(err, &se) {
		failure.Field = se.Field
	}

	if ctx.Err() != nil {
		log.Info("generation canceled", zap.String("stage", stage.Name))
		return failure
	}

	log.Warn("generation aborted",
		zap.String("stage", stage.Name),
		zap.String("field", failure.Field),
		zap.Error(err),
	)

	if _, uerr := o.records.UpdateCampaign(ctx, p, id, model.Fields{
		model.FieldStatus: string(model.CampaignStatusFailed),
	}); uerr != nil {
		log.Warn("failed to mark campaign failed", zap.Error(uerr))
	}
	return failure
}
