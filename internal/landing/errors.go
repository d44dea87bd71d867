package landing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPageUnmounted is returned by Page mutations after Unmount
var ErrPageUnmounted = errors.New("page unmounted")

// ErrorType represents the category of a contact submission failure
type ErrorType int

const (
	// ErrTypeValidation indicates the submission failed field validation
	ErrTypeValidation ErrorType = iota
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// FieldError describes one invalid form field
type FieldError struct {
	Field   string // form field name: name, email, interest, message
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError is returned when a contact submission is rejected.
// It lists every failing field, not just the first.
type ValidationError struct {
	Type   ErrorType
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(parts, "; "))
}

// Has reports whether the named field failed
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Message(field)
	return ok
}

// Message returns the failure message for the named field
func (e *ValidationError) Message(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// IsValidationError checks if an error is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
