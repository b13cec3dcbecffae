package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Concrete errors wrap exactly one of these so callers can
// match with errors.Is without caring about the message.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrPermission   = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError carries field-level detail for a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Validation reports a malformed input on a named field.
func Validation(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Conflict reports a uniqueness violation (duplicate review, duplicate user
// identity, duplicate slug). The caller may retry with different data.
func Conflict(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// Permission reports that the actor lacks rights for the attempted action.
func Permission(message string) error {
	return fmt.Errorf("%w: %s", ErrPermission, message)
}

// NotFound reports an unknown id or username.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Unauthorized reports failed credential verification.
func Unauthorized(message string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, message)
}
