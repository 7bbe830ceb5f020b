package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/internal/store"
	"github.com/flipdirmatze/ad-video-generator/internal/worker"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

// respondError maps domain errors to HTTP responses. Unknown errors are
// logged and reported as 500 with msg.
func (h *ApplicationHandler) respondError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return utils.RespondWithErrorCode(c, fiber.StatusNotFound, "not_found", msg+": not found")
	case errors.Is(err, matching.ErrMalformedTimestamps):
		return utils.RespondWithErrorCode(c, fiber.StatusBadRequest, "malformed_timestamps", err.Error())
	case errors.Is(err, matching.ErrNoEligibleCandidates):
		return utils.RespondWithErrorCode(c, fiber.StatusUnprocessableEntity, "no_tagged_videos",
			"No tagged videos available. Tag your videos before matching.")
	case errors.Is(err, matching.ErrSegmentationFailed):
		h.Logger.WithError(err).Warn("Script segmentation failed")
		return utils.RespondWithErrorCode(c, fiber.StatusBadGateway, "segmentation_failed", err.Error())
	case errors.Is(err, worker.ErrQueueFull):
		return utils.RespondWithErrorCode(c, fiber.StatusServiceUnavailable, "queue_full", "Job queue is full, please retry later")
	}
	h.Logger.WithError(err).Error(msg)
	return utils.RespondWithErrorCode(c, fiber.StatusInternalServerError, "internal_error", msg)
}

func (h *ApplicationHandler) respondValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"code":    "validation_failed",
		"message": "Validation failed",
		"errors":  utils.FormatValidationErrors(err),
	})
}
