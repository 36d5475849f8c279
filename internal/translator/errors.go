package translator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrJobNotFound is returned when a job ID is not in the registry.
var ErrJobNotFound = errors.New("job not found")

// ErrJobNotRunnable is returned when RunJob is called on a job that already
// reached a terminal state or is currently running.
var ErrJobNotRunnable = errors.New("job is not runnable")

// ErrInterrupted is returned by a job run halted via the interruption flag.
// RunBatch stops dispatching further jobs when it sees this error.
var ErrInterrupted = errors.New("translation interrupted")

// ValidationError reports a provider response whose key set does not match
// the chunk that was sent. It is a terminal chunk failure: the retry budget
// was already spent on the call that produced it.
type ValidationError struct {
	Expected    int
	Found       int
	MissingKeys []string
	EmptyKeys   []string
}

func (e *ValidationError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("response has %d keys, expected %d", e.Found, e.Expected))
	if len(e.MissingKeys) > 0 {
		parts = append(parts, fmt.Sprintf("missing keys: %s", strings.Join(e.MissingKeys, ", ")))
	}
	if len(e.EmptyKeys) > 0 {
		parts = append(parts, fmt.Sprintf("empty values for: %s", strings.Join(e.EmptyKeys, ", ")))
	}
	return "invalid translation response: " + strings.Join(parts, "; ")
}

// ParseError reports raw provider text that could not be reconstructed into
// the expected key/value map.
type ParseError struct {
	Expected int
	Found    int
	Preview  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse translation response: matched %d of %d keys; response preview: %q",
		e.Found, e.Expected, e.Preview)
}
