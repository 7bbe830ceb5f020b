package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flipdirmatze/ad-video-generator/middleware"
	"github.com/flipdirmatze/ad-video-generator/models"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

// CreateVideoRequest registers an already uploaded clip in the catalog.
type CreateVideoRequest struct {
	Name     string   `json:"name" validate:"required"`
	URL      string   `json:"url" validate:"omitempty,url"`
	Path     *string  `json:"path,omitempty"`
	Duration *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Tags     []string `json:"tags"`
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required"`
}

type VideoSuccessResponse struct {
	Status string             `json:"status"`
	Data   models.TaggedVideo `json:"data"`
}

type VideoListSuccessResponse struct {
	Status string               `json:"status"`
	Data   []models.TaggedVideo `json:"data"`
}

// ListVideos godoc
// @Summary List the user's videos
// @Tags videos
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} VideoListSuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos [get]
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	videos, err := h.Store.ListVideos(c.UserContext(), userID)
	if err != nil {
		return h.respondError(c, err, "Could not retrieve videos")
	}
	h.Logger.Debugf("Retrieved %d videos for user %s", len(videos), userID)
	return utils.RespondWithJSON(c, fiber.StatusOK, videos)
}

// CreateVideo godoc
// @Summary Register a video clip
// @Description Adds a clip with its content tags to the user's catalog. Tags are trimmed and de-duplicated.
// @Tags videos
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param video body CreateVideoRequest true "Video to register"
// @Success 201 {object} VideoSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos [post]
func (h *ApplicationHandler) CreateVideo(c *fiber.Ctx) error {
	req := new(CreateVideoRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse video JSON: "+err.Error())
	}
	req.Name = utils.SanitizeInput(req.Name)
	if err := validate.Struct(req); err != nil {
		return h.respondValidation(c, err)
	}

	video, err := h.Store.CreateVideo(c.UserContext(), models.TaggedVideo{
		UserID:   middleware.UserID(c),
		Name:     req.Name,
		URL:      req.URL,
		Path:     req.Path,
		Duration: req.Duration,
		Tags:     utils.SanitizeTags(req.Tags),
	})
	if err != nil {
		return h.respondError(c, err, "Could not create video")
	}
	h.Logger.WithField("video_id", video.ID).Info("Video registered")
	return utils.RespondWithJSON(c, fiber.StatusCreated, video)
}

// UpdateVideoTags godoc
// @Summary Replace a video's tags
// @Tags videos
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param videoId path string true "Video id"
// @Param tags body UpdateTagsRequest true "New tag set"
// @Success 200 {object} VideoSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoId}/tags [patch]
func (h *ApplicationHandler) UpdateVideoTags(c *fiber.Ctx) error {
	req := new(UpdateTagsRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse tags JSON: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return h.respondValidation(c, err)
	}

	video, err := h.Store.UpdateVideoTags(c.UserContext(), middleware.UserID(c), c.Params("videoId"), utils.SanitizeTags(req.Tags))
	if err != nil {
		return h.respondError(c, err, "Could not update video tags")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, video)
}
