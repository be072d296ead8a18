package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrInvalidState means a version state transition was rejected
	// (editing or locking a LOCKED or SUPERSEDED row). Not retryable.
	ErrInvalidState = errors.New("invalid state")

	// ErrConcurrencyConflict means an optimistic write lost a race (supersede
	// or ledger append). Safe to retry after re-reading fresh state.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrStorageUnavailable means the durable store is unreachable or not
	// initialized. Fatal to the operation; never retried by the core.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnsupportedAlgorithm means a stored digest names an algorithm this
	// build cannot compute.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// IsRetryable reports whether err is a lost optimistic race that the caller
// may retry after re-reading state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
