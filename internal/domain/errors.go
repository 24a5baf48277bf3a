package domain

import (
	"errors"
	"fmt"
)

// Common domain errors shared across entities.
var (
	// ErrValidation is the base error for all domain validation failures.
	ErrValidation = errors.New("validation error")

	// ErrInvalidID is returned when an identifier is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a caller is not authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotOwned is returned when a caller tries to access an entity
	// belonging to another user.
	ErrNotOwned = errors.New("entity not owned by user")
)

// ValidationError describes a validation failure on a specific field.
// It wraps a sentinel error so callers can use errors.Is for classification.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
