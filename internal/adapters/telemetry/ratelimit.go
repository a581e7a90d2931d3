package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/raidsight/raidsight/pkg/metrics"
)

// RateLimiter is the single shared rate-limit tracker consulted before
// every remote call. It is a mutex-owned token bucket; the lock is only
// held to account tokens, never across a wait or a network call.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	burst      float64
	perSecond  float64
	lastRefill time.Time
}

// NewRateLimiter builds a limiter allowing perSecond sustained calls with
// the given burst. Non-positive inputs disable limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		tokens:     float64(burst),
		burst:      float64(burst),
		perSecond:  perSecond,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if l == nil || l.perSecond <= 0 {
		return nil
	}
	for {
		wait, ok := l.take()
		if ok {
			return nil
		}
		metrics.RecordRateLimitWait()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// take refills and claims a token under the lock. When none is available it
// returns how long until the next one accrues.
func (l *RateLimiter) take() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.lastRefill).Seconds() * l.perSecond
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now

	if l.tokens >= 1 {
		l.tokens--
		return 0, true
	}
	deficit := 1 - l.tokens
	return time.Duration(deficit / l.perSecond * float64(time.Second)), false
}
