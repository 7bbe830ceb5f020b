package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flipdirmatze/ad-video-generator/middleware"
	"github.com/flipdirmatze/ad-video-generator/models"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

// CreateProjectRequest defines the expected request body for creating a project.
// Either a script or word timings must be supplied.
type CreateProjectRequest struct {
	Name         string                 `json:"name" validate:"required"`
	Script       string                 `json:"script"`
	Words        []models.WordTimestamp `json:"words" validate:"omitempty,dive"`
	VoiceoverURL *string                `json:"voiceover_url,omitempty" validate:"omitempty,url"`
}

// ProjectSuccessResponse defines the structure for a successful response for a single project.
type ProjectSuccessResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    models.Project `json:"data"`
}

// CreateProject godoc
// @Summary Create a new project
// @Description Creates a project holding an ad script and, optionally, the voiceover word timings.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param X-User-ID header string true "User id"
// @Param   project body CreateProjectRequest true "Project to create"
// @Success 201 {object} ProjectSuccessResponse "Project created successfully"
// @Failure 400 {object} ErrorResponse "Bad request if input is invalid (e.g., missing name)"
// @Failure 500 {object} ErrorResponse "Internal server error if project creation fails"
// @Router /projects [post]
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	req := new(CreateProjectRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse project JSON: "+err.Error())
	}
	req.Name = utils.SanitizeInput(req.Name)
	req.Script = utils.SanitizeInput(req.Script)
	if err := validate.Struct(req); err != nil {
		return h.respondValidation(c, err)
	}
	if req.Script == "" && len(req.Words) == 0 {
		return utils.RespondWithErrorCode(c, fiber.StatusBadRequest, "validation_failed", "Either script or words is required")
	}

	project, err := h.Store.CreateProject(c.UserContext(), models.Project{
		UserID:       middleware.UserID(c),
		Name:         req.Name,
		Script:       req.Script,
		Words:        req.Words,
		VoiceoverURL: req.VoiceoverURL,
	})
	if err != nil {
		return h.respondError(c, err, "Could not create project")
	}

	h.Logger.WithField("project_id", project.ID).Info("Project created")
	return utils.RespondWithMessage(c, fiber.StatusCreated, "Project created successfully", *project)
}

// GetProject godoc
// @Summary Get a project
// @Description Returns the project with its segments and chosen clips.
// @Tags projects
// @Produce  json
// @Param X-User-ID header string true "User id"
// @Param projectId path string true "Project ID (UUID)"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid project ID format"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{projectId} [get]
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	project, err := h.Store.GetProject(c.UserContext(), middleware.UserID(c), projectID)
	if err != nil {
		return h.respondError(c, err, "Could not retrieve project")
	}
	return utils.RespondWithMessage(c, fiber.StatusOK, "Project retrieved successfully", *project)
}
