package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	ai := "disabled"
	if h.AI != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		ai = "ok"
		if !h.AI.Healthy(ctx) {
			ai = "unavailable"
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "API is healthy",
		"ai":      ai,
	})
}
