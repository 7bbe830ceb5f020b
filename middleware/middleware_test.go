package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type recordingLimiter struct {
	keys []string
}

func (l *recordingLimiter) Allow(key string) (bool, int, time.Time) {
	l.keys = append(l.keys, key)
	return true, 1, time.Now().Add(time.Minute)
}

func (l *recordingLimiter) Limit() int { return 2 }

func send(t *testing.T, app *fiber.App, user string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != "" {
		req.Header.Set(UserIDHeader, user)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireUser_IDOutlivesRequest(t *testing.T) {
	var kept []string
	app := fiber.New()
	app.Use(RequireUser())
	app.Get("/", func(c *fiber.Ctx) error {
		kept = append(kept, UserID(c))
		return c.SendStatus(fiber.StatusOK)
	})

	if status := send(t, app, ""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", status)
	}
	send(t, app, " user-aaaa ")
	for i := 0; i < 5; i++ {
		send(t, app, "user-zzzz")
	}
	if kept[0] != "user-aaaa" {
		t.Fatalf("first user id changed to %q after later requests", kept[0])
	}
}

func TestRateLimit_KeysOutliveRequest(t *testing.T) {
	l := &recordingLimiter{}
	app := fiber.New()
	app.Use(RateLimit(l))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	send(t, app, "user-aaaa")
	for i := 0; i < 5; i++ {
		send(t, app, "user-zzzz")
	}
	if l.keys[0] != "user-aaaa" {
		t.Fatalf("limiter key changed to %q after later requests", l.keys[0])
	}
	send(t, app, "")
	if last := l.keys[len(l.keys)-1]; last == "" {
		t.Fatal("expected client IP as key without a user header")
	}
}
