package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"

	"github.com/flipdirmatze/ad-video-generator/utils"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(key string) (allowed bool, remaining int, reset time.Time)
	Limit() int
}

// RateLimit applies l per user id, falling back to the client IP.
func RateLimit(l Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The limiter keeps keys across requests, so they must not alias the request buffer.
		key := fiberutils.CopyString(c.Get(UserIDHeader))
		if key == "" {
			key = fiberutils.CopyString(c.IP())
		}

		allowed, remaining, reset := l.Allow(key)
		if l.Limit() > 0 {
			c.Set("X-RateLimit-Limit", strconv.Itoa(l.Limit()))
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		if !allowed {
			retry := int(time.Until(reset).Seconds() + 0.5)
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return utils.RespondWithErrorCode(c, fiber.StatusTooManyRequests, "rate_limited", "Too many requests, please try again later")
		}
		return c.Next()
	}
}
