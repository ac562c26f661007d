package mapbox

import "fmt"

// Error represents an error returned by the Mapbox API
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("mapbox: %s (status: %d)", e.Message, e.StatusCode)
}

// IsRetryable returns true if the error might be resolved by retrying
func (e *Error) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsClientError returns true if the error is due to client input
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsAuthError returns true if the error is related to the access token
func (e *Error) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited returns true if the error is due to rate limiting
func (e *Error) IsRateLimited() bool {
	return e.StatusCode == 429
}

// AsMapboxError checks if an error is a Mapbox API error
func AsMapboxError(err error) (*Error, bool) {
	if e, ok := err.(*Error); ok {
		return e, true
	}
	return nil, false
}
