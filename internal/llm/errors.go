package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRateLimit indicates the back-end rejected the request with 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates output that is not valid JSON or does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the back-end failed or was unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates a structured response was cut off at the
// token limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model output truncated: max tokens exceeded"
}

// ErrEmptyResponse indicates the back-end answered without any text, e.g.
// because the content was blocked.
type ErrEmptyResponse struct {
	Reason string
}

func (e *ErrEmptyResponse) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("empty model output (%s)", e.Reason)
	}
	return "empty model output"
}

// IsMalformed reports whether err means the back-end answered but its output
// cannot be used as structured data.
func IsMalformed(err error) bool {
	var inv *ErrInvalidResponse
	var trunc *ErrMaxTokensExceeded
	return errors.As(err, &inv) || errors.As(err, &trunc)
}

// ChainError aggregates the failures of every provider a Chain attempted.
type ChainError struct {
	Errs []error
}

func (e *ChainError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "all providers failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes each attempt for errors.Is and errors.As.
func (e *ChainError) Unwrap() []error { return e.Errs }
