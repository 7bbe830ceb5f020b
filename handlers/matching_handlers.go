package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flipdirmatze/ad-video-generator/internal/jobs"
	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/middleware"
	"github.com/flipdirmatze/ad-video-generator/models"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

// MatchRequest optionally overrides the project's stored script or word timings.
type MatchRequest struct {
	Script string                 `json:"script,omitempty"`
	Words  []models.WordTimestamp `json:"words,omitempty" validate:"omitempty,dive"`
}

type ManualMatchRequest struct {
	VideoID   string   `json:"video_id" validate:"required"`
	StartTime *float64 `json:"start_time,omitempty" validate:"omitempty,gte=0"`
	EndTime   *float64 `json:"end_time,omitempty" validate:"omitempty,gte=0"`
}

type SegmentRequest struct {
	Words []models.WordTimestamp `json:"words" validate:"required,min=1,dive"`
}

type MatchSuccessResponse struct {
	Status string          `json:"status"`
	Data   matching.Result `json:"data"`
}

type JobAcceptedResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Data    models.ProcessingJob `json:"data"`
}

func (h *ApplicationHandler) parseMatchRequest(c *fiber.Ctx) (jobs.MatchOverride, error) {
	var req MatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return jobs.MatchOverride{}, err
		}
	}
	if err := validate.Struct(req); err != nil {
		return jobs.MatchOverride{}, err
	}
	return jobs.MatchOverride{Script: utils.SanitizeInput(req.Script), Words: req.Words}, nil
}

// MatchProject godoc
// @Summary Match the project script to tagged videos
// @Description Segments the script (from word timings when available) and assigns a tagged clip to each segment.
// @Description AI matching is preferred; tag similarity covers segments the AI could not pair.
// @Tags matching
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param projectId path string true "Project ID (UUID)"
// @Param request body MatchRequest false "Optional script or word timing override"
// @Success 200 {object} MatchSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No tagged videos"
// @Failure 502 {object} ErrorResponse "Script segmentation failed"
// @Router /projects/{projectId}/match [post]
func (h *ApplicationHandler) MatchProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	override, err := h.parseMatchRequest(c)
	if err != nil {
		return h.respondValidation(c, err)
	}

	res, err := jobs.MatchProject(c.UserContext(), h.Matcher, h.Store, middleware.UserID(c), projectID, override)
	if err != nil {
		return h.respondError(c, err, "Could not match project")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, res)
}

// MatchProjectAsync godoc
// @Summary Queue a matching job for the project
// @Tags matching
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param projectId path string true "Project ID (UUID)"
// @Param request body MatchRequest false "Optional script or word timing override"
// @Success 202 {object} JobAcceptedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Job queue full"
// @Router /projects/{projectId}/match/async [post]
func (h *ApplicationHandler) MatchProjectAsync(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	override, err := h.parseMatchRequest(c)
	if err != nil {
		return h.respondValidation(c, err)
	}

	ctx := c.UserContext()
	userID := middleware.UserID(c)
	if _, err := h.Store.GetProject(ctx, userID, projectID); err != nil {
		return h.respondError(c, err, "Could not retrieve project")
	}

	job, err := h.Store.CreateJob(ctx, models.ProcessingJob{
		JobType:  models.JobTypeMatch,
		EntityID: projectID,
		UserID:   userID,
		Status:   models.JobStatusPending,
	})
	if err != nil {
		return h.respondError(c, err, "Could not create processing job")
	}

	matchJob := jobs.NewMatchJob(job.ID, projectID, userID, override, h.Matcher, h.Store, h.Logger)
	if err := h.Jobs.SubmitJob(matchJob); err != nil {
		if uerr := h.Store.UpdateJob(ctx, job.ID, models.JobStatusFailed, nil, err.Error()); uerr != nil {
			h.Logger.WithError(uerr).Errorf("Failed to mark job %s as failed", job.ID)
		}
		return h.respondError(c, err, "Could not queue processing job")
	}

	h.Logger.WithFields(map[string]interface{}{"job_id": job.ID, "project_id": projectID}).Info("Match job queued")
	return utils.RespondWithMessage(c, fiber.StatusAccepted, "Matching job accepted", *job)
}

// SetManualMatch godoc
// @Summary Choose a clip for a segment
// @Description Overrides the automatic match of one segment with a user-chosen video.
// @Tags matching
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param projectId path string true "Project ID (UUID)"
// @Param segmentId path string true "Segment id"
// @Param request body ManualMatchRequest true "Chosen video"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectId}/matches/{segmentId} [patch]
func (h *ApplicationHandler) SetManualMatch(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	req := new(ManualMatchRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse match JSON: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return h.respondValidation(c, err)
	}
	if req.StartTime != nil && req.EndTime != nil && *req.EndTime < *req.StartTime {
		return utils.RespondWithErrorCode(c, fiber.StatusBadRequest, "validation_failed", "end_time must not be before start_time")
	}

	ctx := c.UserContext()
	userID := middleware.UserID(c)
	segmentID := c.Params("segmentId")

	project, err := h.Store.GetProject(ctx, userID, projectID)
	if err != nil {
		return h.respondError(c, err, "Could not retrieve project")
	}
	var segment *models.ScriptSegment
	for i := range project.Segments {
		if project.Segments[i].ID == segmentID {
			segment = &project.Segments[i]
			break
		}
	}
	if segment == nil {
		return utils.RespondWithErrorCode(c, fiber.StatusNotFound, "not_found", "Segment not found in project")
	}
	video, err := h.Store.GetVideo(ctx, userID, req.VideoID)
	if err != nil {
		return h.respondError(c, err, "Could not retrieve video")
	}

	updated, err := h.Store.SetManualMatch(ctx, userID, projectID, models.VideoMatch{
		Segment:   *segment,
		Video:     *video,
		Score:     matching.Similarity(segment.Keywords, video.Tags),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Source:    models.MatchSourceManual,
	})
	if err != nil {
		return h.respondError(c, err, "Could not save manual match")
	}
	return utils.RespondWithMessage(c, fiber.StatusOK, "Match updated", *updated)
}

// SegmentWords godoc
// @Summary Split word timings into sentence segments
// @Tags matching
// @Accept json
// @Produce json
// @Param request body SegmentRequest true "Word timings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /segments [post]
func (h *ApplicationHandler) SegmentWords(c *fiber.Ctx) error {
	req := new(SegmentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse words JSON: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return h.respondValidation(c, err)
	}

	segments, err := matching.SegmentFromTimestamps(req.Words)
	if err != nil {
		return h.respondError(c, err, "Could not segment words")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, segments)
}
