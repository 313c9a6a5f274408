package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/genaimarketing/api/internal/model"
)

var (
	// ErrNotFound is returned for missing records and for records owned by another principal
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable wraps transport failures of the underlying store
	ErrUnavailable = errors.New("record store unavailable")
)

// Unavailable wraps a transport error so that errors.Is(err, ErrUnavailable) holds
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// CampaignStore is the campaign collection
type CampaignStore interface {
	CreateCampaign(ctx context.Context, p model.Principal, c *model.Campaign) (*model.Campaign, error)
	GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, p model.Principal, sort Sort) ([]*model.Campaign, error)
	UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error)
}

// AssetStore is the asset set collection
type AssetStore interface {
	CreateAsset(ctx context.Context, p model.Principal, a *model.AssetSet) (*model.AssetSet, error)
	GetAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error)
	GetAssetByCampaign(ctx context.Context, p model.Principal, campaignID string) (*model.AssetSet, error)
	ListAssets(ctx context.Context, p model.Principal, sort Sort) ([]*model.AssetSet, error)
	UpdateAsset(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.AssetSet, error)
	DeleteAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error)
}

// Store is a record store holding both collections
type Store interface {
	CampaignStore
	AssetStore
	Close() error
}

// Sort orders list results
type Sort struct {
	Field string // "name" or "created_at"
	Desc  bool
}

// DefaultSort lists newest first
var DefaultSort = Sort{Field: model.FieldCreatedAt, Desc: true}

// Fields the "asc"/"desc" shorthand orders each collection by
const (
	CampaignShorthandField = model.FieldName
	AssetShorthandField    = model.FieldCreatedAt
)

// ParseSort accepts "name", "-name", "created_at", "-created_at", and "asc"/"desc" which
// order by shorthandField. An empty spec yields DefaultSort.
func ParseSort(spec, shorthandField string) (Sort, error) {
	spec = strings.TrimSpace(spec)
	switch spec {
	case "":
		return DefaultSort, nil
	case "asc":
		return Sort{Field: shorthandField}, nil
	case "desc":
		return Sort{Field: shorthandField, Desc: true}, nil
	}

	s := Sort{Field: spec}
	if strings.HasPrefix(spec, "-") {
		s = Sort{Field: spec[1:], Desc: true}
	}
	if s.Field != model.FieldName && s.Field != model.FieldCreatedAt {
		return Sort{}, model.NewValidationError("sort", "oneof=name created_at")
	}
	return s, nil
}
