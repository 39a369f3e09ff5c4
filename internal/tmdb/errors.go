package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream calls.
var (
	// ErrUnavailable wraps transport failures and timeouts.
	ErrUnavailable = errors.New("movie provider unavailable")
	// ErrInvalidPayload is returned when a 2xx response body is not JSON.
	ErrInvalidPayload = errors.New("movie provider returned invalid JSON")
)

// StatusError reports a non-2xx response from the provider.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("movie provider %s returned status %d", e.Endpoint, e.StatusCode)
}
