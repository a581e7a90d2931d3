package telemetry

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel kinds for telemetry errors.
var (
	ErrRateLimited = errors.New("remote rate limit exceeded")
	ErrNotFound    = errors.New("report not found")
)

// StatusError carries a non-2xx HTTP status through the retry classifier.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d for %s", e.Code, e.Path)
}

// Transient reports whether an error is worth retrying: rate limits, 5xx,
// and connection-level failures. Other 4xx responses are contract failures
// and propagate immediately.
func Transient(err error) bool {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code == 429 || status.Code >= 500
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Anything that never produced a status line (dial, reset, timeout) is
	// a network failure.
	return !errors.Is(err, ErrNotFound)
}
