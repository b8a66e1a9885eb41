package apperr

import (
	"errors"
	"fmt"
)

// Sentinels the handlers map onto HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrAuthentication     = errors.New("authentication required")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DeniedError wraps an authorization deny reason.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "denied: " + e.Reason
}

func Denied(reason string) *DeniedError {
	return &DeniedError{Reason: reason}
}

func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}
