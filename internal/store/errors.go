package store

import (
	"errors"
	"fmt"
)

// ErrValidation marks user-input rejections: empty required fields and
// duplicate project names. These abort the operation with no state
// change and are surfaced as a transient notice, never as a failure.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
