package apperr

import (
	"errors"
	"fmt"
)

// RateLimitError signals that a provider rejected the call for quota
// reasons. It is never retried and is surfaced to the user as-is.
type RateLimitError struct {
	Provider string
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limit exceeded, try again later", e.Provider)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// TransientError signals a temporary provider failure (overload, 5xx)
// that is safe to retry.
type TransientError struct {
	Provider string
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s temporarily unavailable: %v", e.Provider, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// MalformedOutputError signals that generative output could not be
// repaired into valid JSON. Snippet carries the offending text for
// diagnostics.
type MalformedOutputError struct {
	Snippet string
	Err     error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed generative output: %v (snippet: %q)", e.Err, e.Snippet)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// ExhaustedRetriesError wraps the last transient failure after all
// attempts were spent.
type ExhaustedRetriesError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("exhausted %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Err }

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ProviderUnavailableError covers secondary-provider failures (search,
// transcripts, video catalog). Callers degrade to placeholder content
// instead of failing the request.
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsRateLimit reports whether err is a provider quota rejection.
func IsRateLimit(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
