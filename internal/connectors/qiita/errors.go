package qiita

import (
	"fmt"
	"time"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("qiita: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets errors.Is match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a Qiita API error response.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("qiita: API error %d (%s): %s (URL: %s)", e.StatusCode, e.Type, e.Message, e.URL)
	}
	return fmt.Sprintf("qiita: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps status codes onto domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return domain.ErrAuthInvalid
	case 404:
		return domain.ErrNotFound
	default:
		return nil
	}
}
