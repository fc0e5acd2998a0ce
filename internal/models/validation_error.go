package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrNegativeValue          = errors.New("value must not be negative")
	ErrValuePrecision         = errors.New("value must have at most 2 decimal places")
	ErrMissingDate            = errors.New("date is required")
	ErrFutureDate             = errors.New("date must not be in the future")
	ErrMissingUser            = errors.New("user ID is required")
	ErrDescriptionTooLong     = errors.New("description must be at most 255 characters")
	ErrInvalidWindow          = errors.New("start date must not be after end date")
	ErrZeroTargetUpdate       = errors.New("target must be positive when editing a goal")
	ErrDuplicateGoal          = errors.New("a goal already exists for this type and category")
)

// ValidationError reports a malformed or invalid field.
// It unwraps to the specific sentinel so callers can use errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a ValidationError anywhere in its chain
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
