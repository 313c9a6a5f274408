package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/genaimarketing/api/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

const (
	jobTTL = 24 * time.Hour

	// maxJobUpdateAttempts bounds optimistic retries when a job key changes under WATCH
	maxJobUpdateAttempts = 10
)

// JobStore persists generation job records
type JobStore interface {
	SaveJob(ctx context.Context, job *model.Job) error
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	// UpdateJob applies fn to the stored job as one check-and-set. An error from fn
	// leaves the job untouched and is returned as is.
	UpdateJob(ctx context.Context, jobID string, fn func(job *model.Job) error) error
}

// RedisJobStore keeps jobs as JSON under job:<id> for a day
type RedisJobStore struct {
	redis *redis.Client
}

func NewRedisJobStore(redisClient *redis.Client) *RedisJobStore {
	return &RedisJobStore{redis: redisClient}
}

func jobKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

func decodeJob(data []byte, err error) (*model.Job, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job *model.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, jobKey(job.ID), data, jobTTL).Err()
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return decodeJob(s.redis.Get(ctx, jobKey(jobID)).Bytes())
}

// UpdateJob runs fn inside WATCH/MULTI and retries when another writer got there first
func (s *RedisJobStore) UpdateJob(ctx context.Context, jobID string, fn func(job *model.Job) error) error {
	key := jobKey(jobID)
	update := func(tx *redis.Tx) error {
		job, err := decodeJob(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}
		if err := fn(job); err != nil {
			return err
		}
		data, err := json.Marshal(job)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, jobTTL)
			return nil
		})
		return err
	}

	for range maxJobUpdateAttempts {
		err := s.redis.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("update job %s: %w", jobID, redis.TxFailedErr)
}
