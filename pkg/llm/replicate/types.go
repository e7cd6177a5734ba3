package replicate

import (
	"encoding/json"
	"time"
)

type ReplicatePrediction struct {
	ID          string                 `json:"id"`
	Version     string                 `json:"version"`
	Logs        string                 `json:"logs"`
	Error       any                    `json:"error"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	URLs        map[string]string      `json:"urls"`
	Metrics     map[string]interface{} `json:"metrics"`
	Input       map[string]interface{} `json:"input"`
	Output      json.RawMessage        `json:"output"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
}

type CreatePredictionRequest struct {
	Input map[string]interface{} `json:"input"`
}

type ReplicateFile struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	URLs        map[string]string `json:"urls"`
}

const (
	PredictionStatusStarting   = "starting"
	PredictionStatusProcessing = "processing"
	PredictionStatusSucceeded  = "succeeded"
	PredictionStatusFailed     = "failed"
	PredictionStatusCanceled   = "canceled"
)
