package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the request clashes with existing state, e.g. a
// duplicate plot location or an exhausted capacity budget.
var ErrConflict = errors.New("conflict with existing state")

// ErrPreconditionFailed indicates a required system precondition is unmet,
// most notably a missing default accounting session. Fatal before any write.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrInternal indicates an unexpected persistence or transaction failure.
// The underlying cause is logged, never surfaced to callers.
var ErrInternal = errors.New("internal error")

// AppError wraps an error with an HTTP-ish status code and a caller-safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
