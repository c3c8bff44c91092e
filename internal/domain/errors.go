package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

// Violation is a single failed constraint. Code is a stable machine-readable
// token (e.g. "TITLE_NULL"); Message is meant for humans.
type Violation struct {
	Code    string
	Message string
}

// ValidationError carries every violation found in one validation pass, in
// rule order. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to read verr.Violations.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError returns a *ValidationError for the given violations, or
// nil when there are none. The nil case is returned as a plain error so that
// callers can write `return domain.NewValidationError(v)` directly.
func NewValidationError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Code+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Codes returns the violation codes in order.
func (e *ValidationError) Codes() []string {
	codes := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		codes[i] = v.Code
	}
	return codes
}
