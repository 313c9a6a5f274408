package model

// Frame types on /ws/jobs/:jobId
const (
	WSMessageTypeProgress = "progress"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage is the envelope every frame shares; clients switch on Type
type WSMessage struct {
	Type string `json:"type"`
}

// WSProgressMessage carries one generation step of a running job
type WSProgressMessage struct {
	Type        string    `json:"type"`
	JobID       string    `json:"jobId"`
	Progress    int       `json:"progress"`
	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"currentStep,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	CampaignID  string    `json:"campaignId,omitempty"`
}

func NewProgressMessage(jobID string, progress int, label, stage, campaignID string) WSProgressMessage {
	return WSProgressMessage{
		Type:        WSMessageTypeProgress,
		JobID:       jobID,
		Progress:    progress,
		Status:      JobStatusRunning,
		CurrentStep: label,
		Stage:       stage,
		CampaignID:  campaignID,
	}
}

// WSCompleteMessage is the last frame of a successful job; Result is the finished campaign
type WSCompleteMessage struct {
	Type   string      `json:"type"`
	JobID  string      `json:"jobId"`
	Result interface{} `json:"result"`
}

func NewCompleteMessage(jobID string, result interface{}) WSCompleteMessage {
	return WSCompleteMessage{Type: WSMessageTypeComplete, JobID: jobID, Result: result}
}

// WSErrorMessage is the last frame of a failed or canceled job
type WSErrorMessage struct {
	Type  string  `json:"type"`
	JobID string  `json:"jobId"`
	Error WSError `json:"error"`
}

// WSError uses the response error codes; Stage names the stage that aborted the run
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

func NewErrorMessage(jobID, code, message, stage string) WSErrorMessage {
	return WSErrorMessage{
		Type:  WSMessageTypeError,
		JobID: jobID,
		Error: WSError{Code: code, Message: message, Stage: stage},
	}
}
