package providers

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthError reports a missing or rejected credential. It is never retried:
// every subsequent attempt would fail the same way.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return fmt.Sprintf("authentication failed: %s", e.Msg) }

// RateLimitError reports a 429 / quota-exceeded response. RetryAfter is the
// server-suggested delay, zero when the server did not provide one.
type RateLimitError struct {
	RetryAfter time.Duration
	Msg        string
}

func (e *RateLimitError) Error() string { return fmt.Sprintf("rate limited: %s", e.Msg) }

// IsAuthError reports whether err is a non-retryable credential failure.
// Besides the typed error it also sniffs common provider message shapes,
// since some backends only surface "401 Unauthorized" style text.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "api key") ||
		strings.Contains(msg, "invalid credential")
}

// AsRateLimit returns the rate limit error wrapped in err, if any.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
