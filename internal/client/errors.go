package client

import (
	"errors"
	"fmt"
)

// Closed error taxonomy for the hazard service boundary. Every transport
// outcome and provider error shape is mapped into one of these before it
// leaves this package; callers match with errors.Is and never inspect
// provider-specific shapes.
var (
	// ErrAuthRequired: no session, or the server returned 401. Never
	// retried automatically; the caller must prompt re-authentication.
	ErrAuthRequired = errors.New("authentication required")

	// ErrPayloadTooLarge: the server returned 413 on upload.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrNotFound: the server returned 404 on fetch-by-id.
	ErrNotFound = errors.New("inspection not found")

	// ErrUnexpectedResponse: 2xx but missing required fields. A server
	// contract violation, surfaced with a truncated diagnostic body.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrNetwork: transport-level failure or timeout.
	ErrNetwork = errors.New("network error")

	// ErrServer: any other non-2xx response.
	ErrServer = errors.New("server error")
)

// maxDiagnosticBody caps how much response body travels in error
// messages.
const maxDiagnosticBody = 512

// APIError carries diagnostics alongside one of the taxonomy sentinels.
type APIError struct {
	Sentinel   error
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v (status %d): %s", e.Sentinel, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%v: %s", e.Sentinel, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}

func apiError(sentinel error, statusCode int, body []byte) *APIError {
	return &APIError{
		Sentinel:   sentinel,
		StatusCode: statusCode,
		Body:       truncate(body),
	}
}

func truncate(body []byte) string {
	if len(body) > maxDiagnosticBody {
		return string(body[:maxDiagnosticBody]) + "..."
	}
	return string(body)
}
