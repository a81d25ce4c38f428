package hnclient

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrUpstreamUnavailable is returned when the upstream call does not
	// complete or returns a non-success status for a required endpoint.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse is returned when a successful response body
	// cannot be parsed into the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// UpstreamError carries endpoint and status context for a failed upstream call.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s (status %d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
