package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/flipdirmatze/ad-video-generator/middleware"
)

// RegisterRoutes mounts the health check, the Swagger UI and the v1 API.
func RegisterRoutes(app *fiber.App, h *ApplicationHandler, limiter middleware.Limiter) {
	app.Get("/health", h.Health)
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	apiV1 := app.Group("/api/v1", middleware.RateLimit(limiter))
	apiV1.Post("/segments", h.SegmentWords)

	videos := apiV1.Group("/videos", middleware.RequireUser())
	videos.Get("", h.ListVideos)
	videos.Post("", h.CreateVideo)
	videos.Patch("/:videoId/tags", h.UpdateVideoTags)

	projects := apiV1.Group("/projects", middleware.RequireUser())
	projects.Post("", h.CreateProject)
	projects.Get("/:projectId", h.GetProject)
	projects.Post("/:projectId/match", h.MatchProject)
	projects.Post("/:projectId/match/async", h.MatchProjectAsync)
	projects.Patch("/:projectId/matches/:segmentId", h.SetManualMatch)

	jobsGroup := apiV1.Group("/jobs", middleware.RequireUser())
	jobsGroup.Get("/:jobId", h.GetJobStatus)
}
