package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectStatusDraft   = "draft"
	ProjectStatusMatched = "matched"
)

// Project is the persisted workflow state of one ad video: its script, the
// segments derived from it and the chosen clip for each segment.
type Project struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Script       string          `json:"script"`
	Words        []WordTimestamp `json:"words,omitempty"`
	Segments     []ScriptSegment `json:"segments"`
	Matches      []VideoMatch    `json:"matches"`
	Status       string          `json:"status"`
	VoiceoverURL *string         `json:"voiceover_url,omitempty"` // Nullable TEXT
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
