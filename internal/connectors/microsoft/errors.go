package microsoft

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or could not be obtained.
	ErrUnauthorised = errors.New("microsoft: unauthorised")

	// ErrForbidden indicates the application lacks permission for the requested resource.
	ErrForbidden = errors.New("microsoft: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("microsoft: not found")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("microsoft: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("microsoft: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("microsoft: server error")

	// ErrUnexpectedStatus indicates any other non-success status.
	ErrUnexpectedStatus = errors.New("microsoft: unexpected status")

	// ErrMalformedResponse indicates the response body did not have the expected shape.
	ErrMalformedResponse = errors.New("microsoft: malformed response")
)

// UpstreamError reports a failed Graph API operation.
type UpstreamError struct {
	// Op names the logical operation, e.g. "search documents".
	Op string
	// StatusCode is the HTTP status, or zero if no response was received.
	StatusCode int
	// Err is the underlying cause.
	Err error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err for op.
func NewUpstreamError(op string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Op: op, StatusCode: statusCode, Err: err}
}

// WrapError converts an HTTP status code to an appropriate error.
// Success codes return nil.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		if statusCode >= 200 && statusCode < 300 {
			return nil
		}
		return ErrUnexpectedStatus
	}
}
