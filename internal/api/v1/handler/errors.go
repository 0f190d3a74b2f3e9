package handler

import (
	"errors"
	"net/http"

	"app/internal/apperr"
)

// writeServiceError maps pipeline errors onto HTTP status codes. Rate
// limits surface as 429 so callers can distinguish "slow down" from a
// provider fault, which is a 502.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		rateLimit   *apperr.RateLimitError
		notFound    *apperr.NotFoundError
		malformed   *apperr.MalformedOutputError
		exhausted   *apperr.ExhaustedRetriesError
		unavailable *apperr.ProviderUnavailableError
	)
	switch {
	case errors.As(err, &rateLimit):
		http.Error(w, rateLimit.Error(), http.StatusTooManyRequests)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &malformed), errors.As(err, &exhausted), errors.As(err, &unavailable):
		http.Error(w, "Course generation failed, please try again later", http.StatusBadGateway)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
