package application

import "errors"

var (
	ErrNotFound = errors.New("application not found")
	ErrConflict = errors.New("application id already exists")
)

// ValidationError is returned for input rejected before anything is stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
