package schema

import (
	"strings"

	"smartsite/pkg/serrors"
)

// Violation describes one field that failed validation.
type Violation struct {
	// Field is the canonical JSON name of the offending field, or "body" when
	// the payload as a whole could not be read.
	Field string `json:"field"`
	// Constraint names the violated rule, e.g. "required", "gte=0", "email".
	Constraint string `json:"constraint"`
	// Message is a human-readable explanation.
	Message string `json:"message"`
}

// ValidationError reports every violation found in a payload. It matches
// serrors.ErrValidation with errors.Is.
type ValidationError struct {
	Violations []Violation

	cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}

	msg := "validation failed: " + strings.Join(parts, "; ")
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}

	return msg
}

// Is reports whether target is serrors.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == serrors.ErrValidation
}

// Unwrap returns the decoding error behind a "body" violation, if any.
func (e *ValidationError) Unwrap() error { return e.cause }
