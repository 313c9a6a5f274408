package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/genaimarketing/api/internal/model"
)

type enqueued struct {
	task *asynq.Task
	opts map[asynq.OptionType]interface{}
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []enqueued
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e := enqueued{task: task, opts: map[asynq.OptionType]interface{}{}}
	for _, o := range opts {
		e.opts[o.Type()] = o.Value()
	}
	f.tasks = append(f.tasks, e)
	return &asynq.TaskInfo{ID: "task"}, nil
}

func (f *fakeEnqueuer) Tasks() []enqueued {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]enqueued(nil), f.tasks...)
}

// fakeCanceler records calls; deleteErr mimics asynq refusing to delete an active task
type fakeCanceler struct {
	canceled  []string
	deleted   []string
	deleteErr error
}

func (f *fakeCanceler) CancelProcessing(id string) error {
	f.canceled = append(f.canceled, id)
	return nil
}

func (f *fakeCanceler) DeleteTask(queue, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, queue+"/"+id)
	return nil
}

type memJobStore struct {
	mu   sync.Mutex
	jobs map[string]model.Job
}

func newMemJobStore() *memJobStore {
	return &memJobStore{jobs: map[string]model.Job{}}
}

func (s *memJobStore) SaveJob(ctx context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	cp.Steps = append([]string(nil), job.Steps...)
	s.jobs[job.ID] = cp
	return nil
}

func (s *memJobStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	job.Steps = append([]string(nil), job.Steps...)
	return &job, nil
}

func (s *memJobStore) UpdateJob(ctx context.Context, jobID string, fn func(job *model.Job) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Steps = append([]string(nil), job.Steps...)
	if err := fn(&job); err != nil {
		return err
	}
	s.jobs[jobID] = job
	return nil
}

type fakeStorage struct {
	uploads map[string][]byte
	deleted []string
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	f.uploads[key] = buf.Bytes()
	return f.PublicURL(key), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

var errBoom = errors.New("boom")
