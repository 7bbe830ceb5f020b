package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flipdirmatze/ad-video-generator/middleware"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

// GetJobStatus godoc
// @Summary Get a processing job
// @Tags jobs
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param jobId path string true "Job ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{jobId} [get]
func (h *ApplicationHandler) GetJobStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	job, err := h.Store.GetJob(c.UserContext(), middleware.UserID(c), jobID)
	if err != nil {
		return h.respondError(c, err, "Could not retrieve job status")
	}
	h.Logger.Debugf("Retrieved status for job ID %s: %s", jobID, job.Status)
	return utils.RespondWithJSON(c, fiber.StatusOK, job)
}
