package huuto

import (
	"errors"
	"fmt"
	"slices"
)

// Error kinds mapped from HTTP status codes. Check with errors.Is; the full
// request context is available through errors.As on *APIError.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrNotImplemented = errors.New("not implemented")
	ErrAPI            = errors.New("unexpected api status")
)

// APIError is returned when the API responds with a status code outside the
// accepted set for a call. It unwraps to one of the error kinds above.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.kind)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// ValidationError reports a request parameter that failed local validation.
// It is returned before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// AuthError wraps any failure during the credential exchange, including a
// rejected username/password and an unparseable token response.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// checkStatus validates a response status code against the accepted set.
// Any code in the accepted set passes, whatever it is; some endpoints return
// 201 or 204 on success. Everything else maps to a typed error kind.
func checkStatus(method, path string, status int, accepted []int) error {
	if slices.Contains(accepted, status) {
		return nil
	}

	var kind error
	switch status {
	case 400:
		kind = ErrBadRequest
	case 401:
		kind = ErrUnauthorized
	case 403:
		kind = ErrForbidden
	case 404:
		kind = ErrNotFound
	case 501:
		kind = ErrNotImplemented
	default:
		kind = ErrAPI
	}

	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		kind:       kind,
	}
}
