package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"

	"github.com/flipdirmatze/ad-video-generator/utils"
)

const (
	UserIDHeader = "X-User-ID"
	userIDLocal  = "userid"
)

// RequireUser rejects requests without a user id header. Authentication is
// done upstream; this service only scopes data by the forwarded id.
// The stored id is a copy: header values point into fasthttp's reused buffers
// and queued jobs keep the id after the request returns.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := fiberutils.CopyString(strings.TrimSpace(c.Get(UserIDHeader)))
		if userID == "" {
			return utils.RespondWithErrorCode(c, fiber.StatusUnauthorized, "unauthorized", "Missing "+UserIDHeader+" header")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// UserID returns the id stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
