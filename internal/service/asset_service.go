package service

import (
	"context"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

// AssetService handles generated content records
type AssetService struct {
	store store.AssetStore
}

func NewAssetService(s store.AssetStore) *AssetService {
	return &AssetService{store: s}
}

func (s *AssetService) Get(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	return s.store.GetAsset(ctx, p, id)
}

func (s *AssetService) GetByCampaign(ctx context.Context, p model.Principal, campaignID string) (*model.AssetSet, error) {
	return s.store.GetAssetByCampaign(ctx, p, campaignID)
}

func (s *AssetService) List(ctx context.Context, p model.Principal, sortSpec string) ([]*model.AssetSet, error) {
	sort, err := store.ParseSort(sortSpec, store.AssetShorthandField)
	if err != nil {
		return nil, err
	}
	return s.store.ListAssets(ctx, p, sort)
}

// Update merges a nested JSON body such as {"captions":{"facebook":"..."}}
func (s *AssetService) Update(ctx context.Context, p model.Principal, id string, body map[string]any) (*model.AssetSet, error) {
	patch, err := model.FlattenAssetPatch(body)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateAsset(ctx, p, id, patch)
}

func (s *AssetService) Delete(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	return s.store.DeleteAsset(ctx, p, id)
}
