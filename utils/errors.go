package utils

import (
	"errors"
	"net/http"
)

// ValidationError: malformed or out-of-range input, user-correctable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError: a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// PreconditionError: the entity exists but is in the wrong state for the
// requested transition.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// InternalError wraps a store or IO failure. The caller gets a generic
// message; the wrapped cause goes to the operator logs.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string { return e.Message }
func (e *InternalError) Unwrap() error { return e.Cause }

// HTTPStatus maps a taxonomy error to its response code.
func HTTPStatus(err error) int {
	var ve *ValidationError
	var nf *NotFoundError
	var pe *PreconditionError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &pe):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show the caller. Internal
// failures are replaced with a generic message.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
