package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

// CreateCampaignResponse is returned when a campaign and its asset set are created
type CreateCampaignResponse struct {
	Campaign *model.Campaign `json:"campaign"`
	Asset    *model.AssetSet `json:"asset"`
}

// CampaignService handles campaign records
type CampaignService struct {
	store  store.Store
	tasks  TaskEnqueuer // nil disables the webhook
	waiter *generation.Waiter
	logger *zap.Logger
}

func NewCampaignService(s store.Store, tasks TaskEnqueuer, waiter *generation.Waiter, logger *zap.Logger) *CampaignService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{
		store:  s,
		tasks:  tasks,
		waiter: waiter,
		logger: logger.Named("campaigns"),
	}
}

// Create validates the brief, stores the campaign with an empty asset set and notifies
// the generation pipeline. Asset and webhook failures are logged and never fail the create.
func (s *CampaignService) Create(ctx context.Context, p model.Principal, in model.CampaignInput) (*CreateCampaignResponse, error) {
	if err := generation.ValidateInput(in); err != nil {
		return nil, err
	}

	c, err := s.store.CreateCampaign(ctx, p, model.NewCampaign(in))
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	log := s.logger.With(zap.String("campaignId", c.ID), zap.String("userId", p.UserID))

	asset, err := s.store.CreateAsset(ctx, p, model.NewAssetSet(c.ID))
	if err != nil {
		log.Warn("failed to create asset set", zap.Error(err))
		asset = nil
	}

	s.notify(log, c, asset)
	log.Info("campaign created")

	return &CreateCampaignResponse{Campaign: c, Asset: asset}, nil
}

func (s *CampaignService) notify(log *zap.Logger, c *model.Campaign, asset *model.AssetSet) {
	if s.tasks == nil {
		return
	}
	task, err := newWebhookTask(&WebhookPayload{Campaign: c, Asset: asset})
	if err != nil {
		log.Warn("failed to build webhook task", zap.Error(err))
		return
	}
	if _, err := s.tasks.Enqueue(task,
		asynq.Queue(QueueWebhook),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour),
	); err != nil {
		log.Warn("failed to enqueue webhook", zap.Error(err))
	}
}

// CreateCampaign creates a campaign for an orchestrator running in this process
func (s *CampaignService) CreateCampaign(ctx context.Context, p model.Principal, in model.CampaignInput) (*model.Campaign, error) {
	res, err := s.Create(ctx, p, in)
	if err != nil {
		return nil, err
	}
	return res.Campaign, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	return s.store.GetCampaign(ctx, p, id)
}

// List returns the principal's campaigns ordered by sortSpec
func (s *CampaignService) List(ctx context.Context, p model.Principal, sortSpec string) ([]*model.Campaign, error) {
	sort, err := store.ParseSort(sortSpec, store.CampaignShorthandField)
	if err != nil {
		return nil, err
	}
	return s.store.ListCampaigns(ctx, p, sort)
}

// UpdateCampaign merges a partial update. The overall status can only read completed
// when every stage field of the resulting record is completed.
func (s *CampaignService) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	current, err := s.store.GetCampaign(ctx, p, id)
	if err != nil {
		return nil, err
	}
	next := *current
	if err := next.Apply(patch); err != nil {
		return nil, err
	}
	if err := next.CheckCompletion(); err != nil {
		return nil, err
	}
	return s.store.UpdateCampaign(ctx, p, id, patch)
}

// Delete removes the campaign and its asset set
func (s *CampaignService) Delete(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	c, err := s.store.DeleteCampaign(ctx, p, id)
	if err != nil {
		return nil, err
	}

	asset, err := s.store.GetAssetByCampaign(ctx, p, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		s.logger.Warn("failed to look up asset set", zap.String("campaignId", id), zap.Error(err))
	default:
		if _, err := s.store.DeleteAsset(ctx, p, asset.ID); err != nil {
			s.logger.Warn("failed to delete asset set", zap.String("campaignId", id), zap.Error(err))
		}
	}
	return c, nil
}

// Await blocks until field reads value and returns the record at that point
func (s *CampaignService) Await(ctx context.Context, p model.Principal, id, field string, value model.StageStatus, timeout time.Duration) (*model.Campaign, error) {
	valid := value.IsValid()
	if field == model.FieldStatus {
		valid = model.CampaignStatus(value).IsValid()
	}
	if !valid {
		return nil, model.NewValidationError("value", "invalid")
	}
	if err := s.waiter.AwaitField(ctx, p, id, field, value, generation.WithTimeout(timeout)); err != nil {
		return nil, err
	}
	return s.store.GetCampaign(ctx, p, id)
}
