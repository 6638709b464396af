package board

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the operation referenced a user, chore or group that
	// does not exist. Nothing was changed.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was rejected before any mutation.
	ErrValidation = errors.New("validation failed")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
