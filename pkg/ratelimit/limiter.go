package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter defines the interface for pacing outbound requests
type Limiter interface {
	// Wait blocks until the rate limit allows another request, or until
	// ctx is done
	Wait(ctx context.Context) error
	// Reset resets the rate limiter state
	Reset()
}

// MinInterval enforces a minimum spacing between consecutive requests.
// It is a single process-wide gate shared by all callers, not a
// per-target limiter: the whole outbound channel is throttled together.
type MinInterval struct {
	delay time.Duration
	last  time.Time
	mu    sync.Mutex
}

// NewMinInterval creates a limiter that spaces requests at least delay apart
func NewMinInterval(delay time.Duration) *MinInterval {
	return &MinInterval{
		delay: delay,
	}
}

// Wait blocks until at least the configured delay has elapsed since the
// previous request, then records the current time as the new last-request
// timestamp. The mutex is held across the sleep so concurrent callers
// serialize through the gate one at a time; each observes the timestamp
// written by the caller before it and cannot race the check-then-set.
func (m *MinInterval) Wait(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := time.Since(m.last)
	if remaining := m.delay - elapsed; remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.last = time.Now()
	return nil
}

// Reset clears the last-request timestamp so the next Wait returns
// immediately
func (m *MinInterval) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = time.Time{}
}

// Delay returns the configured minimum spacing
func (m *MinInterval) Delay() time.Duration {
	return m.delay
}
