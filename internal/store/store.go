// Package store persists the media catalog, project workflow state and
// processing jobs. Two backends share the same method set: Supabase for
// deployments and SQLite for local runs and tests.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/flipdirmatze/ad-video-generator/models"
)

// ErrRecordNotFound is returned when a row does not exist or belongs to another user.
var ErrRecordNotFound = errors.New("record not found")

const (
	videosTable   = "videos"
	projectsTable = "projects"
	jobsTable     = "processing_jobs"
)

func now() time.Time {
	return time.Now().UTC()
}

// mergeMatch replaces the match for m's segment or inserts it, keeping matches
// in segment order. It fails when the segment is not part of the project.
func mergeMatch(p *models.Project, m models.VideoMatch) error {
	order := -1
	for i, s := range p.Segments {
		if s.ID == m.Segment.ID {
			order = i
			m.Segment = s
			break
		}
	}
	if order < 0 {
		return fmt.Errorf("segment %s: %w", m.Segment.ID, ErrRecordNotFound)
	}

	pos := make(map[string]int, len(p.Segments))
	for i, s := range p.Segments {
		pos[s.ID] = i
	}
	out := make([]models.VideoMatch, 0, len(p.Matches)+1)
	inserted := false
	for _, existing := range p.Matches {
		if existing.Segment.ID == m.Segment.ID {
			continue
		}
		if !inserted && pos[existing.Segment.ID] > order {
			out = append(out, m)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, m)
	}
	p.Matches = out
	return nil
}
