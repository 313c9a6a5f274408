// Package redisstore keeps campaigns and asset sets in redis hashes.
//
// Layout:
//
//	campaign:<id>          hash of campaign fields plus user/created_at/updated_at
//	campaign:<id>:asset    id of the campaign's asset set
//	campaign:<id>:changes  pub/sub channel, one message per update
//	asset:<id>             hash of dotted asset paths plus user/campaign_id/created_at/updated_at
//	user:<uid>:campaigns   zset of campaign ids scored by creation time
//	user:<uid>:assets      zset of asset ids scored by creation time
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

// updateScript merges fields into a hash owned by ARGV[1] and publishes the change.
// Returns nil when the hash is missing or owned by someone else.
var updateScript = redis.NewScript(`
local owner = redis.call('HGET', KEYS[1], 'user')
if not owner or owner ~= ARGV[1] then
  return false
end
for i = 3, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
redis.call('HSET', KEYS[1], 'updated_at', ARGV[2])
if KEYS[2] ~= '' then
  redis.call('PUBLISH', KEYS[2], ARGV[2])
end
return redis.call('HGETALL', KEYS[1])
`)

type Store struct {
	redis *redis.Client
	now   func() time.Time
}

func New(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient, now: time.Now}
}

// Close is a no-op; the client belongs to the caller
func (s *Store) Close() error { return nil }

func campaignKey(id string) string      { return fmt.Sprintf("campaign:%s", id) }
func campaignAssetKey(id string) string { return fmt.Sprintf("campaign:%s:asset", id) }
func assetKey(id string) string         { return fmt.Sprintf("asset:%s", id) }
func userCampaignsKey(u string) string  { return fmt.Sprintf("user:%s:campaigns", u) }
func userAssetsKey(u string) string     { return fmt.Sprintf("user:%s:assets", u) }

// ChangesChannel is where every campaign update is announced
func ChangesChannel(id string) string { return fmt.Sprintf("campaign:%s:changes", id) }

func wrap(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return store.Unavailable(op, err)
}

func (s *Store) CreateCampaign(ctx context.Context, p model.Principal, c *model.Campaign) (*model.Campaign, error) {
	rec := *c
	now := s.now().UTC()
	rec.ID = uuid.New().String()
	rec.User = p.UserID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	values := metaValues(rec.Meta(), rec.Fields())
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, campaignKey(rec.ID), values)
		pipe.ZAdd(ctx, userCampaignsKey(p.UserID), redis.Z{Score: float64(now.UnixNano()), Member: rec.ID})
		return nil
	})
	if err != nil {
		return nil, wrap("create campaign", err)
	}
	return &rec, nil
}

func (s *Store) GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	values, err := s.redis.HGetAll(ctx, campaignKey(id)).Result()
	if err != nil {
		return nil, wrap("get campaign", err)
	}
	meta, fields, err := splitMeta(values)
	if err != nil || meta.UserID != p.UserID {
		return nil, store.ErrNotFound
	}
	meta.ID = id
	return model.CampaignFromRecord(meta, fields), nil
}

func (s *Store) ListCampaigns(ctx context.Context, p model.Principal, sort store.Sort) ([]*model.Campaign, error) {
	ids, err := s.redis.ZRange(ctx, userCampaignsKey(p.UserID), 0, -1).Result()
	if err != nil {
		return nil, wrap("list campaigns", err)
	}
	rows, err := s.hgetAll(ctx, campaignKey, ids)
	if err != nil {
		return nil, wrap("list campaigns", err)
	}

	list := make([]*model.Campaign, 0, len(rows))
	for i, values := range rows {
		meta, fields, err := splitMeta(values)
		if err != nil || meta.UserID != p.UserID {
			continue
		}
		meta.ID = ids[i]
		list = append(list, model.CampaignFromRecord(meta, fields))
	}
	store.SortCampaigns(list, sort)
	return list, nil
}

func (s *Store) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	if err := model.ValidateCampaignPatch(patch); err != nil {
		return nil, err
	}
	values, err := s.update(ctx, p, campaignKey(id), ChangesChannel(id), patch)
	if err != nil {
		return nil, err
	}
	meta, fields, err := splitMeta(values)
	if err != nil {
		return nil, store.ErrNotFound
	}
	meta.ID = id
	return model.CampaignFromRecord(meta, fields), nil
}

func (s *Store) DeleteCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	c, err := s.GetCampaign(ctx, p, id)
	if err != nil {
		return nil, err
	}
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, campaignKey(id), campaignAssetKey(id))
		pipe.ZRem(ctx, userCampaignsKey(p.UserID), id)
		return nil
	})
	if err != nil {
		return nil, wrap("delete campaign", err)
	}
	return c, nil
}

func (s *Store) CreateAsset(ctx context.Context, p model.Principal, a *model.AssetSet) (*model.AssetSet, error) {
	rec := *a
	now := s.now().UTC()
	rec.ID = uuid.New().String()
	rec.User = p.UserID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	values := metaValues(rec.Meta(), rec.Fields())
	values[model.FieldCampaign] = rec.CampaignID
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, assetKey(rec.ID), values)
		pipe.ZAdd(ctx, userAssetsKey(p.UserID), redis.Z{Score: float64(now.UnixNano()), Member: rec.ID})
		if rec.CampaignID != "" {
			pipe.Set(ctx, campaignAssetKey(rec.CampaignID), rec.ID, 0)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("create asset", err)
	}
	return &rec, nil
}

func (s *Store) GetAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	values, err := s.redis.HGetAll(ctx, assetKey(id)).Result()
	if err != nil {
		return nil, wrap("get asset", err)
	}
	return assetFromValues(p, id, values)
}

func (s *Store) GetAssetByCampaign(ctx context.Context, p model.Principal, campaignID string) (*model.AssetSet, error) {
	id, err := s.redis.Get(ctx, campaignAssetKey(campaignID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNotFound
		}
		return nil, wrap("get asset by campaign", err)
	}
	return s.GetAsset(ctx, p, id)
}

func (s *Store) ListAssets(ctx context.Context, p model.Principal, sort store.Sort) ([]*model.AssetSet, error) {
	ids, err := s.redis.ZRange(ctx, userAssetsKey(p.UserID), 0, -1).Result()
	if err != nil {
		return nil, wrap("list assets", err)
	}
	rows, err := s.hgetAll(ctx, assetKey, ids)
	if err != nil {
		return nil, wrap("list assets", err)
	}

	list := make([]*model.AssetSet, 0, len(rows))
	for i, values := range rows {
		a, err := assetFromValues(p, ids[i], values)
		if err != nil {
			continue
		}
		list = append(list, a)
	}
	store.SortAssets(list, sort)
	return list, nil
}

func (s *Store) UpdateAsset(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.AssetSet, error) {
	if err := model.ValidateAssetPatch(patch); err != nil {
		return nil, err
	}
	values, err := s.update(ctx, p, assetKey(id), "", patch)
	if err != nil {
		return nil, err
	}
	return assetFromValues(p, id, values)
}

func (s *Store) DeleteAsset(ctx context.Context, p model.Principal, id string) (*model.AssetSet, error) {
	a, err := s.GetAsset(ctx, p, id)
	if err != nil {
		return nil, err
	}
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, assetKey(id))
		pipe.ZRem(ctx, userAssetsKey(p.UserID), id)
		return nil
	})
	if err != nil {
		return nil, wrap("delete asset", err)
	}
	if a.CampaignID != "" {
		// only drop the mapping if it still points at this asset set
		current, err := s.redis.Get(ctx, campaignAssetKey(a.CampaignID)).Result()
		if err == nil && current == id {
			s.redis.Del(ctx, campaignAssetKey(a.CampaignID))
		}
	}
	return a, nil
}

func (s *Store) update(ctx context.Context, p model.Principal, key, channel string, patch model.Fields) (map[string]string, error) {
	args := make([]interface{}, 0, 2+2*len(patch))
	args = append(args, p.UserID, s.now().UTC().Format(time.RFC3339Nano))
	for k, v := range patch {
		args = append(args, k, v)
	}

	res, err := updateScript.Run(ctx, s.redis, []string{key, channel}, args...).StringSlice()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNotFound
		}
		return nil, wrap("update", err)
	}

	values := make(map[string]string, len(res)/2)
	for i := 0; i+1 < len(res); i += 2 {
		values[res[i]] = res[i+1]
	}
	return values, nil
}

func (s *Store) hgetAll(ctx context.Context, key func(string) string, ids []string) ([]map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err := s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, key(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, len(ids))
	for i, cmd := range cmds {
		rows[i] = cmd.Val()
	}
	return rows, nil
}

func metaValues(meta model.RecordMeta, f model.Fields) map[string]interface{} {
	values := make(map[string]interface{}, len(f)+3)
	for k, v := range f {
		values[k] = v
	}
	values[model.FieldUser] = meta.UserID
	values[model.FieldCreatedAt] = meta.CreatedAt.Format(time.RFC3339Nano)
	values[model.FieldUpdatedAt] = meta.UpdatedAt.Format(time.RFC3339Nano)
	return values
}

var errMissing = errors.New("missing record")

// splitMeta separates store-owned keys from record fields. An empty hash is a missing record.
func splitMeta(values map[string]string) (model.RecordMeta, model.Fields, error) {
	if len(values) == 0 {
		return model.RecordMeta{}, nil, errMissing
	}
	var meta model.RecordMeta
	fields := make(model.Fields, len(values))
	for k, v := range values {
		switch k {
		case model.FieldUser:
			meta.UserID = v
		case model.FieldCreatedAt:
			meta.CreatedAt, _ = time.Parse(time.RFC3339Nano, v)
		case model.FieldUpdatedAt:
			meta.UpdatedAt, _ = time.Parse(time.RFC3339Nano, v)
		default:
			fields[k] = v
		}
	}
	return meta, fields, nil
}

func assetFromValues(p model.Principal, id string, values map[string]string) (*model.AssetSet, error) {
	meta, fields, err := splitMeta(values)
	if err != nil || meta.UserID != p.UserID {
		return nil, store.ErrNotFound
	}
	meta.ID = id
	return model.AssetFromRecord(meta, fields[model.FieldCampaign], fields), nil
}
