package retry

import (
	"context"
	"time"

	"app/internal/apperr"

	"github.com/rs/zerolog"
)

// Policy controls how Do treats failures. It is immutable and safe to
// share across concurrent calls.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	IsTransient func(error) bool
	IsFatal     func(error) bool
}

// Do runs fn up to p.MaxAttempts times. Fatal errors abort immediately,
// transient errors back off exponentially (BaseDelay doubled per
// attempt), anything else propagates unchanged. The wait respects ctx
// cancellation and never blocks other goroutines.
func Do[T any](ctx context.Context, logger zerolog.Logger, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Call failed")

		if p.IsFatal != nil && p.IsFatal(err) {
			return zero, err
		}
		if p.IsTransient == nil || !p.IsTransient(err) {
			return zero, err
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			break
		}
		delay := p.BaseDelay << uint(attempt)
		logger.Info().Dur("delay", delay).Int("attempt", attempt+1).Msg("Backing off before retry")
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, &apperr.ExhaustedRetriesError{Attempts: p.MaxAttempts, Err: lastErr}
}
