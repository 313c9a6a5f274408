package service

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/genaimarketing/api/internal/model"
)

const (
	TaskTypeGeneration = "generation:run"
	TaskTypeWebhook    = "campaign:webhook"

	QueueGeneration = "generation"
	QueueWebhook    = "webhook"
)

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskCanceler is satisfied by *asynq.Inspector
type TaskCanceler interface {
	CancelProcessing(id string) error
	DeleteTask(queue, id string) error
}

// WebhookPayload is posted to the external generation pipeline when a campaign is created
type WebhookPayload struct {
	Campaign *model.Campaign `json:"campaign"`
	Asset    *model.AssetSet `json:"asset"`
}

// GenerationTaskPayload wraps a job id and its payload the way every job task does
type GenerationTaskPayload struct {
	JobID   string          `json:"jobId"`
	Payload json.RawMessage `json:"payload"`
}

func newGenerationTask(jobID string, payload []byte) (*asynq.Task, error) {
	data, err := json.Marshal(GenerationTaskPayload{JobID: jobID, Payload: payload})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGeneration, data), nil
}

func newWebhookTask(payload *WebhookPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWebhook, data), nil
}
