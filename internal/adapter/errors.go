package adapter

import (
	"errors"
	"fmt"

	"github.com/Comraich/sortr-sub001/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrUnreachable wraps transport failures: DNS, refused connections,
	// timeouts.
	ErrUnreachable = errors.New("server unreachable")
)

// APIError is a non-2xx response. It unwraps to the sentinel matching
// Status.
type APIError struct {
	Status int
	Code   models.ErrorCode
	// Message is the server's error text, or a generic fallback when the
	// body carried none.
	Message    string
	Fields     []models.FieldError
	RetryAfter int

	kind error
}

// NewAPIError builds the error a response with status and message maps to.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message, kind: sentinelFor(status)}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Message returns the user-facing text of err: the server's message for an
// [*APIError], err's own text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnreachable) {
		return "Cannot reach the server. Check the address and your connection."
	}
	return err.Error()
}
