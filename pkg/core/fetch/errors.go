package fetch

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds surfaced per source. Cancellation is deliberately not here:
// a superseded or torn-down request is swallowed, never reported as a
// user-visible error.
var (
	// ErrTimeout marks a request that exceeded its per-request deadline.
	ErrTimeout = errors.New("source request timed out")

	// ErrUnavailable marks a source that failed after all retry attempts.
	ErrUnavailable = errors.New("source unavailable")
)

// unavailable wraps a terminal fetch failure with the source name.
func unavailable(source string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, source, cause)
}

// isCancellation reports whether err stems from cycle supersession or
// caller teardown rather than a genuine failure.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// isTimeout reports whether err stems from the per-request deadline.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// transientStatus reports whether an HTTP status is worth retrying.
// Only upstream gateway failures qualify; 4xx responses never do.
func transientStatus(status int) bool {
	switch status {
	case 502, 503, 504:
		return true
	default:
		return false
	}
}
