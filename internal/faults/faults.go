// Package faults defines the stable error kinds surfaced by the engine.
package faults

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure returned by the engine wraps exactly one
// of these so callers can branch with errors.Is.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDependency        = errors.New("dependency failure")
)

// Unauthenticated wraps ErrUnauthenticated with a reason.
func Unauthenticated(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrUnauthenticated)
}

// Forbidden wraps ErrForbidden with a reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}

// NotFound wraps ErrNotFound naming the missing entity.
func NotFound(entity, id string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// InvalidInput wraps ErrInvalidInput with a field-level reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidInput)
}

// Required reports a missing required field.
func Required(field string) error {
	return fmt.Errorf("%s is required: %w", field, ErrInvalidInput)
}

// Conflict wraps ErrConflict with a reason.
func Conflict(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// InvalidTransition reports an action illegal for the current status.
func InvalidTransition(action, status string) error {
	return fmt.Errorf("action %s not allowed from status %s: %w", action, status, ErrInvalidTransition)
}

// Dependency wraps a collaborator failure as an opaque DependencyFailure.
func Dependency(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrDependency)
}

// IsUnauthenticated reports whether err wraps ErrUnauthenticated.
func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

// IsForbidden reports whether err wraps ErrForbidden.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err wraps ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsInvalidTransition reports whether err wraps ErrInvalidTransition.
func IsInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }

// IsDependency reports whether err wraps ErrDependency.
func IsDependency(err error) bool { return errors.Is(err, ErrDependency) }
