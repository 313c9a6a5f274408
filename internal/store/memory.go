package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/genaimarketing/api/internal/model"
)

// Memory is an in-process store. It is safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	campaigns  map[string]*model.Campaign
	assets     map[string]*model.AssetSet
	byCampaign map[string]string
	now        func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		campaigns:  make(map[string]*model.Campaign),
		assets:     make(map[string]*model.AssetSet),
		byCampaign: make(map[string]string),
		now:        time.Now,
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateCampaign(ctx context.Context, p model.Principal, c *model.Campaign) (*model.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := *c
	now := m.now().UTC()
	rec.ID = uuid.New().String()
	rec.User = p.UserID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	m.mu.Lock()
	m.campaigns[rec.ID] = &rec
	m.mu.Unlock()

	out := rec
	return &out, nil
}

func (m *Memory) GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.campaigns[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (m *Memory) ListCampaigns(ctx context.Context, p model.Principal, s Sort) ([]*model.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	list := make([]*model.Campaign, 0)
	for _, rec := range m.campaigns {
		if rec.User == p.UserID {
			out := *rec
			list = append(list, &out)
		}
	}
	m.mu.RUnlock()

	SortCampaigns(list, s)
	return list, nil
}

func (m *Memory) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.campaigns[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	next := *rec
	if err := next.Apply(patch); err != nil {
		return nil, err
	}
	next.UpdatedAt = m.now().UTC()
	m.campaigns[id] = &next

	out := next
	return &out, nil
}

func (m *Memory) DeleteCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.campaigns[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	delete(m.campaigns, id)
	return rec, nil
}

func (m *Memory) CreateAsset(ctx context.Context, p model.Principal, a *model.AssetSet) (*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := *a
	now := m.now().UTC()
	rec.ID = uuid.New().String()
	rec.User = p.UserID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	m.mu.Lock()
	m.assets[rec.ID] = &rec
	if rec.CampaignID != "" {
		m.byCampaign[rec.CampaignID] = rec.ID
	}
	m.mu.Unlock()

	out := rec
	return &out, nil
}

func (m *Memory) GetAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getAssetLocked(p, id)
}

func (m *Memory) getAssetLocked(p model.Principal, id string) (*model.AssetSet, error) {
	rec, ok := m.assets[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (m *Memory) GetAssetByCampaign(ctx context.Context, p model.Principal, campaignID string) (*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCampaign[campaignID]
	if !ok {
		return nil, ErrNotFound
	}
	return m.getAssetLocked(p, id)
}

func (m *Memory) ListAssets(ctx context.Context, p model.Principal, s Sort) ([]*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	list := make([]*model.AssetSet, 0)
	for _, rec := range m.assets {
		if rec.User == p.UserID {
			out := *rec
			list = append(list, &out)
		}
	}
	m.mu.RUnlock()

	SortAssets(list, s)
	return list, nil
}

func (m *Memory) UpdateAsset(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.assets[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	next := *rec
	if err := next.Apply(patch); err != nil {
		return nil, err
	}
	next.UpdatedAt = m.now().UTC()
	m.assets[id] = &next

	out := next
	return &out, nil
}

func (m *Memory) DeleteAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.assets[id]
	if !ok || rec.User != p.UserID {
		return nil, ErrNotFound
	}
	delete(m.assets, id)
	if m.byCampaign[rec.CampaignID] == id {
		delete(m.byCampaign, rec.CampaignID)
	}
	return rec, nil
}
