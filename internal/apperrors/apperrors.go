package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced entity does not exist for the current user.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when an operation targets an entity owned by another user,
// or when the operation requires a user and there is none.
var ErrUnauthorized = errors.New("not authorized")

type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries field level messages for malformed or out-of-range input.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field error was collected, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// NotOwned builds an authorization error for an entity of another user.
func NotOwned(entity string, id int) error {
	return fmt.Errorf("%s %d does not belong to the current user: %w", entity, id, ErrUnauthorized)
}
