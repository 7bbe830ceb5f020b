package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	JobTypeMatch = "MATCH_SCRIPT"

	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

// ProcessingJob tracks an asynchronous unit of work started through the API.
type ProcessingJob struct {
	ID           uuid.UUID       `json:"id"`
	JobType      string          `json:"job_type"`
	EntityID     uuid.UUID       `json:"entity_id"`
	UserID       string          `json:"user_id"`
	Status       string          `json:"status"`
	ErrorMessage *string         `json:"error_message,omitempty"` // Nullable TEXT
	Output       json.RawMessage `json:"output,omitempty"`        // Nullable JSONB
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`   // Nullable TIMESTAMPTZ
	CompletedAt  *time.Time      `json:"completed_at,omitempty"` // Nullable TIMESTAMPTZ
}
