package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/internal/jobs"
	"github.com/flipdirmatze/ad-video-generator/internal/worker"
	"github.com/flipdirmatze/ad-video-generator/models"
)

// Store is the persistence the handlers need. Both internal/store backends implement it.
type Store interface {
	ListVideos(ctx context.Context, userID string) ([]models.TaggedVideo, error)
	TaggedVideos(ctx context.Context, userID string) ([]models.TaggedVideo, error)
	GetVideo(ctx context.Context, userID, videoID string) (*models.TaggedVideo, error)
	CreateVideo(ctx context.Context, v models.TaggedVideo) (*models.TaggedVideo, error)
	UpdateVideoTags(ctx context.Context, userID, videoID string, tags []string) (*models.TaggedVideo, error)

	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	GetProject(ctx context.Context, userID string, id uuid.UUID) (*models.Project, error)
	SaveMatchResult(ctx context.Context, projectID uuid.UUID, segments []models.ScriptSegment, matches []models.VideoMatch, status string) error
	SetManualMatch(ctx context.Context, userID string, projectID uuid.UUID, m models.VideoMatch) (*models.Project, error)

	CreateJob(ctx context.Context, job models.ProcessingJob) (*models.ProcessingJob, error)
	UpdateJob(ctx context.Context, id uuid.UUID, status string, output any, errorMessage string) error
	GetJob(ctx context.Context, userID string, id uuid.UUID) (*models.ProcessingJob, error)
}

// JobQueue accepts background jobs.
type JobQueue interface {
	SubmitJob(job worker.Job) error
}

// HealthChecker reports whether a remote dependency is reachable.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Matcher jobs.Runner
	Store   Store
	Jobs    JobQueue
	AI      HealthChecker // nil when the AI backend has no health endpoint
	Logger  *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(matcher jobs.Runner, store Store, queue JobQueue, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Matcher: matcher,
		Store:   store,
		Jobs:    queue,
		Logger:  logger,
	}
}

var validate = validator.New()

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
