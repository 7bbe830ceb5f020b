// Package ratelimit provides a fixed-window request limiter keyed by client.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type window struct {
	start time.Time
	count int
}

// Limiter allows up to limit requests per key in each window. Expired windows
// are removed by a cron job between Start and Stop.
type Limiter struct {
	limit           int
	window          time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	logger          logrus.FieldLogger

	mu      sync.Mutex
	windows map[string]*window
	cron    *cron.Cron
}

// New returns a limiter allowing limit requests per key in each window. Start
// must be called to schedule the cleanup of expired windows.
func New(limit int, win, cleanupInterval time.Duration, logger logrus.FieldLogger) *Limiter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Limiter{
		limit:           limit,
		window:          win,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
		logger:          logger,
		windows:         make(map[string]*window),
	}
}

// Start schedules periodic cleanup of expired windows.
func (l *Limiter) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", l.cleanupInterval), func() { l.Cleanup() }); err != nil {
		return fmt.Errorf("failed to schedule rate limit cleanup: %w", err)
	}
	c.Start()
	l.cron = c
	return nil
}

// Stop halts the cleanup job and waits for a running cleanup to finish.
func (l *Limiter) Stop() {
	l.mu.Lock()
	c := l.cron
	l.cron = nil
	l.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// Allow records a request for key and reports whether it is within the limit,
// along with the requests remaining and when the current window resets.
// A limit of zero disables limiting.
func (l *Limiter) Allow(key string) (bool, int, time.Time) {
	if l.limit <= 0 {
		return true, 0, time.Time{}
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.windows[key] = w
	}
	reset := w.start.Add(l.window)
	if w.count >= l.limit {
		return false, 0, reset
	}
	w.count++
	return true, l.limit - w.count, reset
}

// Cleanup drops windows that have expired and returns how many were removed.
func (l *Limiter) Cleanup() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
			removed++
		}
	}
	if removed > 0 {
		l.logger.WithField("removed", removed).Debug("Rate limit windows cleaned up")
	}
	return removed
}

// Limit returns the configured requests per window.
func (l *Limiter) Limit() int {
	return l.limit
}
