package models

import "time"

// TaggedVideo represents a user's uploaded clip together with the tags describing its content.
type TaggedVideo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	URL       string    `json:"url"`
	Path      *string   `json:"path,omitempty"`     // Nullable storage key
	Duration  *float64  `json:"duration,omitempty"` // Nullable, seconds
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasTags reports whether the video carries at least one non-blank tag.
func (v TaggedVideo) HasTags() bool {
	for _, t := range v.Tags {
		if t != "" {
			return true
		}
	}
	return false
}
