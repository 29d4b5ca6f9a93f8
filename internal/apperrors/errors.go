package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyPosted indicates that a ledger posting with the same idempotency
// key has already been committed. The original posting is the single winner.
var ErrAlreadyPosted = errors.New("already posted")

// ErrUnbalanced indicates that a constructed set of ledger entries failed the
// double-entry balance invariant. This is a defect, never a caller error.
var ErrUnbalanced = errors.New("unbalanced ledger entries")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable indicates a transport or availability failure reaching the
// store or a remote endpoint. Fallback-eligible where a fallback path exists.
var ErrUnavailable = errors.New("service unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human-readable message suitable for returning to the UI layer.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError carrying ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
