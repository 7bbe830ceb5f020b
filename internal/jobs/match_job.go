package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

// Runner produces a matching result for one request.
type Runner interface {
	Run(ctx context.Context, in matching.Input) (*matching.Result, error)
}

// ProjectStore is the persistence a project match needs.
type ProjectStore interface {
	GetProject(ctx context.Context, userID string, id uuid.UUID) (*models.Project, error)
	TaggedVideos(ctx context.Context, userID string) ([]models.TaggedVideo, error)
	SaveMatchResult(ctx context.Context, projectID uuid.UUID, segments []models.ScriptSegment, matches []models.VideoMatch, status string) error
}

// JobStore records job status transitions.
type JobStore interface {
	UpdateJob(ctx context.Context, id uuid.UUID, status string, output any, errorMessage string) error
}

// Store is what a MatchJob persists to.
type Store interface {
	ProjectStore
	JobStore
}

// MatchOverride replaces the project's stored script or word timings for one run.
type MatchOverride struct {
	Script string                 `json:"script,omitempty"`
	Words  []models.WordTimestamp `json:"words,omitempty"`
}

// MatchProject loads the project and the user's tagged videos, runs matching and
// persists segments and matches on the project.
func MatchProject(ctx context.Context, runner Runner, store ProjectStore, userID string, projectID uuid.UUID, override MatchOverride) (*matching.Result, error) {
	project, err := store.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	videos, err := store.TaggedVideos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tagged videos: %w", err)
	}

	in := matching.Input{Script: project.Script, Words: project.Words, Videos: videos}
	if override.Script != "" {
		in.Script = override.Script
		in.Words = nil
	}
	if len(override.Words) > 0 {
		in.Words = override.Words
	}

	res, err := runner.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := store.SaveMatchResult(ctx, projectID, res.Segments, res.Matches, models.ProjectStatusMatched); err != nil {
		return nil, fmt.Errorf("save match result: %w", err)
	}
	return res, nil
}

// MatchJob runs MatchProject on a worker and tracks it as a processing job.
type MatchJob struct {
	JobID     uuid.UUID
	ProjectID uuid.UUID
	UserID    string
	Override  MatchOverride

	runner Runner
	store  Store
	logger logrus.FieldLogger
}

// NewMatchJob builds a job for the worker pool. userID must not alias request memory.
func NewMatchJob(jobID, projectID uuid.UUID, userID string, override MatchOverride, runner Runner, store Store, logger logrus.FieldLogger) *MatchJob {
	return &MatchJob{
		JobID:     jobID,
		ProjectID: projectID,
		UserID:    userID,
		Override:  override,
		runner:    runner,
		store:     store,
		logger:    logger,
	}
}

func (j *MatchJob) ID() string {
	return j.JobID.String()
}

// Execute moves the job through PROCESSING to COMPLETED or FAILED. The
// returned error is the matching failure; status bookkeeping errors are logged.
func (j *MatchJob) Execute(ctx context.Context) error {
	log := j.logger.WithFields(logrus.Fields{"job_id": j.JobID, "project_id": j.ProjectID})

	if err := j.store.UpdateJob(ctx, j.JobID, models.JobStatusProcessing, nil, ""); err != nil {
		log.WithError(err).Error("Failed to mark job as processing")
	}

	res, err := MatchProject(ctx, j.runner, j.store, j.UserID, j.ProjectID, j.Override)
	if err != nil {
		// The job context may already be cancelled; record the failure regardless.
		if uerr := j.store.UpdateJob(context.WithoutCancel(ctx), j.JobID, models.JobStatusFailed, nil, err.Error()); uerr != nil {
			log.WithError(uerr).Error("Failed to mark job as failed")
		}
		return fmt.Errorf("match project %s: %w", j.ProjectID, err)
	}

	output := map[string]interface{}{
		"project_id":            j.ProjectID,
		"matches":               len(res.Matches),
		"unmatched_segment_ids": res.Unmatched,
		"strategy":              res.Strategy,
		"segment_source":        res.SegmentSource,
	}
	if err := j.store.UpdateJob(ctx, j.JobID, models.JobStatusCompleted, output, ""); err != nil {
		log.WithError(err).Error("Failed to mark job as completed")
		return err
	}
	log.WithField("matches", len(res.Matches)).Info("Match job completed")
	return nil
}
