package model

import "errors"

// Common errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidSection = errors.New("invalid section")
)

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
