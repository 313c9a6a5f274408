// Package pgstore keeps campaigns and asset sets in postgres as flat JSONB documents.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	doc        JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS campaigns_user_id_idx ON campaigns (user_id, created_at);

CREATE TABLE IF NOT EXISTS assets (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	campaign_id TEXT NOT NULL DEFAULT '',
	doc         JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS assets_user_id_idx ON assets (user_id, created_at);
CREATE INDEX IF NOT EXISTS assets_campaign_id_idx ON assets (campaign_id);
`

type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open connects to postgres and verifies the connection
func Open(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return New(pool), nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// EnsureSchema creates the tables when they do not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Pool exposes the connection pool for maintenance tasks
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return store.Unavailable(op, err)
}

type row struct {
	id         string
	userID     string
	campaignID string
	doc        map[string]string
	createdAt  time.Time
	updatedAt  time.Time
}

func (r row) meta() model.RecordMeta {
	return model.RecordMeta{
		ID:        r.id,
		UserID:    r.userID,
		CreatedAt: r.createdAt.UTC(),
		UpdatedAt: r.updatedAt.UTC(),
	}
}

func (r row) campaign() *model.Campaign {
	return model.CampaignFromRecord(r.meta(), r.doc)
}

func (r row) asset() *model.AssetSet {
	return model.AssetFromRecord(r.meta(), r.campaignID, r.doc)
}

const campaignColumns = `id, user_id, doc, created_at, updated_at`

func scanCampaign(sc pgx.Row) (row, error) {
	var r row
	err := sc.Scan(&r.id, &r.userID, &r.doc, &r.createdAt, &r.updatedAt)
	return r, err
}

const assetColumns = `id, user_id, campaign_id, doc, created_at, updated_at`

func scanAsset(sc pgx.Row) (row, error) {
	var r row
	err := sc.Scan(&r.id, &r.userID, &r.campaignID, &r.doc, &r.createdAt, &r.updatedAt)
	return r, err
}

func (s *Store) CreateCampaign(ctx context.Context, p model.Principal, c *model.Campaign) (*model.Campaign, error) {
	now := s.now().UTC()
	query := `
		INSERT INTO campaigns (id, user_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + campaignColumns

	r, err := scanCampaign(s.pool.QueryRow(ctx, query, uuid.New().String(), p.UserID, map[string]string(c.Fields()), now))
	if err != nil {
		return nil, wrap("create campaign", err)
	}
	return r.campaign(), nil
}

func (s *Store) GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND user_id = $2`

	r, err := scanCampaign(s.pool.QueryRow(ctx, query, id, p.UserID))
	if err != nil {
		return nil, wrap("get campaign", err)
	}
	return r.campaign(), nil
}

func (s *Store) ListCampaigns(ctx context.Context, p model.Principal, sort store.Sort) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1`

	rows, err := s.pool.Query(ctx, query, p.UserID)
	if err != nil {
		return nil, wrap("list campaigns", err)
	}
	defer rows.Close()

	list := make([]*model.Campaign, 0)
	for rows.Next() {
		r, err := scanCampaign(rows)
		if err != nil {
			return nil, wrap("scan campaign", err)
		}
		list = append(list, r.campaign())
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list campaigns", err)
	}
	store.SortCampaigns(list, sort)
	return list, nil
}

func (s *Store) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	if err := model.ValidateCampaignPatch(patch); err != nil {
		return nil, err
	}
	query := `
		UPDATE campaigns
		SET doc = doc || $3::jsonb, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING ` + campaignColumns

	r, err := scanCampaign(s.pool.QueryRow(ctx, query, id, p.UserID, map[string]string(patch), s.now().UTC()))
	if err != nil {
		return nil, wrap("update campaign", err)
	}
	return r.campaign(), nil
}

func (s *Store) DeleteCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	query := `DELETE FROM campaigns WHERE id = $1 AND user_id = $2 RETURNING ` + campaignColumns

	r, err := scanCampaign(s.pool.QueryRow(ctx, query, id, p.UserID))
	if err != nil {
		return nil, wrap("delete campaign", err)
	}
	return r.campaign(), nil
}

func (s *Store) CreateAsset(ctx context.Context, p model.Principal, a *model.AssetSet) (*model.AssetSet, error) {
	now := s.now().UTC()
	query := `
		INSERT INTO assets (id, user_id, campaign_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + assetColumns

	r, err := scanAsset(s.pool.QueryRow(ctx, query, uuid.New().String(), p.UserID, a.CampaignID, map[string]string(a.Fields()), now))
	if err != nil {
		return nil, wrap("create asset", err)
	}
	return r.asset(), nil
}

func (s *Store) GetAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND user_id = $2`

	r, err := scanAsset(s.pool.QueryRow(ctx, query, id, p.UserID))
	if err != nil {
		return nil, wrap("get asset", err)
	}
	return r.asset(), nil
}

func (s *Store) GetAssetByCampaign(ctx context.Context, p model.Principal, campaignID string) (*model.AssetSet, error) {
	query := `
		SELECT ` + assetColumns + ` FROM assets
		WHERE campaign_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	r, err := scanAsset(s.pool.QueryRow(ctx, query, campaignID, p.UserID))
	if err != nil {
		return nil, wrap("get asset by campaign", err)
	}
	return r.asset(), nil
}

func (s *Store) ListAssets(ctx context.Context, p model.Principal, sort store.Sort) ([]*model.AssetSet, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1`

	rows, err := s.pool.Query(ctx, query, p.UserID)
	if err != nil {
		return nil, wrap("list assets", err)
	}
	defer rows.Close()

	list := make([]*model.AssetSet, 0)
	for rows.Next() {
		r, err := scanAsset(rows)
		if err != nil {
			return nil, wrap("scan asset", err)
		}
		list = append(list, r.asset())
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list assets", err)
	}
	store.SortAssets(list, sort)
	return list, nil
}

func (s *Store) UpdateAsset(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.AssetSet, error) {
	if err := model.ValidateAssetPatch(patch); err != nil {
		return nil, err
	}
	query := `
		UPDATE assets
		SET doc = doc || $3::jsonb, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING ` + assetColumns

	r, err := scanAsset(s.pool.QueryRow(ctx, query, id, p.UserID, map[string]string(patch), s.now().UTC()))
	if err != nil {
		return nil, wrap("update asset", err)
	}
	return r.asset(), nil
}

func (s *Store) DeleteAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	query := `DELETE FROM assets WHERE id = $1 AND user_id = $2 RETURNING ` + assetColumns

	r, err := scanAsset(s.pool.QueryRow(ctx, query, id, p.UserID))
	if err != nil {
		return nil, wrap("delete asset", err)
	}
	return r.asset(), nil
}
