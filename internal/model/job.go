package model

import "time"

// Job tracks one server-side generation run
type Job struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"` // "generation"
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	CampaignID  string     `json:"campaignId,omitempty"`
	FailedStage string     `json:"failedStage,omitempty"`
	Steps       []string   `json:"steps,omitempty"`
	Error       *string    `json:"error,omitempty"`
	UserID      string     `json:"userId"`
	Payload     []byte     `json:"-"` // Stored as JSON
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// Job types
const (
	JobTypeGeneration = "generation"
)

// GenerationJobPayload contains the data for a generation job
type GenerationJobPayload struct {
	Principal Principal     `json:"principal"`
	Input     CampaignInput `json:"input"`
}

// StartGenerationResponse is returned when a generation job is queued
type StartGenerationResponse struct {
	JobID  string    `json:"jobId"`
	Status JobStatus `json:"status"`
}
