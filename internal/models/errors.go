package models

import "errors"

// Sentinel errors shared across layers. The handler maps them to HTTP
// status codes; lower layers only decide which category a failure is.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports malformed input for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
