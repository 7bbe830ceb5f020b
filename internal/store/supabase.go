package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/flipdirmatze/ad-video-generator/models"
)

// SupabaseStore keeps data in Supabase tables through PostgREST.
type SupabaseStore struct {
	client *supa.Client
}

// NewSupabaseStore wraps an initialized Supabase client.
func NewSupabaseStore(client *supa.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) ListVideos(_ context.Context, userID string) ([]models.TaggedVideo, error) {
	var videos []models.TaggedVideo
	_, err := s.client.From(videosTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&videos)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve videos: %w", err)
	}
	if videos == nil {
		videos = []models.TaggedVideo{}
	}
	return videos, nil
}

// TaggedVideos returns the user's videos that carry at least one tag. The
// empty-array filter runs server-side; blank tags are dropped here.
func (s *SupabaseStore) TaggedVideos(_ context.Context, userID string) ([]models.TaggedVideo, error) {
	var videos []models.TaggedVideo
	_, err := s.client.From(videosTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Not("tags", "eq", "{}").
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&videos)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve tagged videos: %w", err)
	}
	return onlyTagged(videos), nil
}

func (s *SupabaseStore) GetVideo(_ context.Context, userID, videoID string) (*models.TaggedVideo, error) {
	var videos []models.TaggedVideo
	_, err := s.client.From(videosTable).
		Select("*", "", false).
		Eq("id", videoID).
		Eq("user_id", userID).
		ExecuteTo(&videos)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve video %s: %w", videoID, err)
	}
	if len(videos) == 0 {
		return nil, ErrRecordNotFound
	}
	return &videos[0], nil
}

func (s *SupabaseStore) CreateVideo(_ context.Context, v models.TaggedVideo) (*models.TaggedVideo, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = now()
	v.UpdatedAt = v.CreatedAt
	if v.Tags == nil {
		v.Tags = []string{}
	}

	var created []models.TaggedVideo
	_, err := s.client.From(videosTable).
		Insert(v, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("could not create video: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("video creation returned no data")
	}
	return &created[0], nil
}

func (s *SupabaseStore) UpdateVideoTags(_ context.Context, userID, videoID string, tags []string) (*models.TaggedVideo, error) {
	var updated []models.TaggedVideo
	_, err := s.client.From(videosTable).
		Update(map[string]interface{}{"tags": tags, "updated_at": now()}, "representation", "").
		Eq("id", videoID).
		Eq("user_id", userID).
		ExecuteTo(&updated)
	if err != nil {
		return nil, fmt.Errorf("could not update tags for video %s: %w", videoID, err)
	}
	if len(updated) == 0 {
		return nil, ErrRecordNotFound
	}
	return &updated[0], nil
}

func (s *SupabaseStore) CreateProject(_ context.Context, p models.Project) (*models.Project, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if p.Status == "" {
		p.Status = models.ProjectStatusDraft
	}
	normalizeProject(&p)

	var created []models.Project
	_, err := s.client.From(projectsTable).
		Insert(p, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("could not create project: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("project creation returned no data")
	}
	return &created[0], nil
}

func (s *SupabaseStore) GetProject(_ context.Context, userID string, id uuid.UUID) (*models.Project, error) {
	var projects []models.Project
	_, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID).
		ExecuteTo(&projects)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve project %s: %w", id, err)
	}
	if len(projects) == 0 {
		return nil, ErrRecordNotFound
	}
	return &projects[0], nil
}

// SaveMatchResult replaces the project's segments and matches and sets its status.
func (s *SupabaseStore) SaveMatchResult(_ context.Context, projectID uuid.UUID, segments []models.ScriptSegment, matches []models.VideoMatch, status string) error {
	p := models.Project{Segments: segments, Matches: matches}
	normalizeProject(&p)

	_, count, err := s.client.From(projectsTable).
		Update(map[string]interface{}{
			"segments":   p.Segments,
			"matches":    p.Matches,
			"status":     status,
			"updated_at": now(),
		}, "", "exact").
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("could not save match result for project %s: %w", projectID, err)
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *SupabaseStore) CreateJob(_ context.Context, job models.ProcessingJob) (*models.ProcessingJob, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}

	var created []models.ProcessingJob
	_, err := s.client.From(jobsTable).
		Insert(job, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job record: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no record returned after insert, job_id: %s", job.ID)
	}
	return &created[0], nil
}

// UpdateJob moves a job to status, recording output and an error message when given.
func (s *SupabaseStore) UpdateJob(_ context.Context, id uuid.UUID, status string, output any, errorMessage string) error {
	t := now()
	updateData := map[string]interface{}{
		"status":     status,
		"updated_at": t,
	}
	switch status {
	case models.JobStatusProcessing:
		updateData["started_at"] = t
	case models.JobStatusCompleted, models.JobStatusFailed:
		updateData["completed_at"] = t
	}
	if output != nil {
		outputBytes, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("failed to marshal job output: %w", err)
		}
		updateData["output"] = json.RawMessage(outputBytes)
	}
	if errorMessage != "" {
		updateData["error_message"] = errorMessage
	}

	_, count, err := s.client.From(jobsTable).
		Update(updateData, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update job record %s: %w", id, err)
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *SupabaseStore) GetJob(_ context.Context, userID string, id uuid.UUID) (*models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	_, err := s.client.From(jobsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID).
		Limit(1, "").
		ExecuteTo(&jobs)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve job %s: %w", id, err)
	}
	if len(jobs) == 0 {
		return nil, ErrRecordNotFound
	}
	return &jobs[0], nil
}

func onlyTagged(videos []models.TaggedVideo) []models.TaggedVideo {
	out := make([]models.TaggedVideo, 0, len(videos))
	for _, v := range videos {
		if v.HasTags() {
			out = append(out, v)
		}
	}
	return out
}

func normalizeProject(p *models.Project) {
	if p.Segments == nil {
		p.Segments = []models.ScriptSegment{}
	}
	if p.Matches == nil {
		p.Matches = []models.VideoMatch{}
	}
}

// SetManualMatch records a user-chosen clip for one segment of the project.
func (s *SupabaseStore) SetManualMatch(ctx context.Context, userID string, projectID uuid.UUID, m models.VideoMatch) (*models.Project, error) {
	p, err := s.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	m.Source = models.MatchSourceManual
	if err := mergeMatch(p, m); err != nil {
		return nil, err
	}
	if err := s.SaveMatchResult(ctx, projectID, p.Segments, p.Matches, models.ProjectStatusMatched); err != nil {
		return nil, err
	}
	p.Status = models.ProjectStatusMatched
	return p, nil
}
