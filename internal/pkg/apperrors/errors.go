package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrDuplicateField   = errors.New("duplicate field value")
)

// CastError is returned when a path identifier cannot be converted into a
// database identifier.
type CastError struct {
	Value string
	Kind  string
}

// NewCastError creates a CastError for the given raw value
func NewCastError(value, kind string) *CastError {
	return &CastError{Value: value, Kind: kind}
}

// Error implements error interface
func (e *CastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %q", e.Kind, e.Value)
}

// Unwrap implements errors.Unwrap interface
func (e *CastError) Unwrap() error {
	return ErrInvalidID
}

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field-level failure of a document
type ValidationError struct {
	Fields []FieldError
}

// Add appends a field failure
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors checks if there are any field failures
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Messages returns the field messages in declaration order
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return messages
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %d field(s) invalid", ErrValidationFailed, len(e.Fields))
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// DuplicateFieldError is returned when a write violates a unique index
type DuplicateFieldError struct {
	Field string
	Value interface{}
}

// NewDuplicateFieldError creates a DuplicateFieldError
func NewDuplicateFieldError(field string, value interface{}) *DuplicateFieldError {
	return &DuplicateFieldError{Field: field, Value: value}
}

// Error implements error interface
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field value is passed: { %s: %v }", e.Field, e.Value)
}

// Unwrap implements errors.Unwrap interface
func (e *DuplicateFieldError) Unwrap() error {
	return ErrDuplicateField
}

// StatusError carries an HTTP status alongside a client-facing message
type StatusError struct {
	Err        error
	Message    string
	StatusCode int
}

// NewStatusError creates a StatusError with a message
func NewStatusError(statusCode int, message string) *StatusError {
	return &StatusError{StatusCode: statusCode, Message: message}
}

// NewNotFoundError creates a 404 StatusError wrapping ErrResourceNotFound
func NewNotFoundError(message string) *StatusError {
	return &StatusError{Err: ErrResourceNotFound, StatusCode: 404, Message: message}
}

// Error implements error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// Unwrap implements errors.Unwrap interface
func (e *StatusError) Unwrap() error {
	return e.Err
}

// WithDefaultStatus attaches statusCode to err unless err already carries a
// status of its own. The client message becomes the status text so wrapped
// driver errors stay in the logs.
func WithDefaultStatus(err error, statusCode int) error {
	if err == nil {
		return nil
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return err
	}
	return &StatusError{
		Err:        err,
		StatusCode: statusCode,
		Message:    strings.ToLower(http.StatusText(statusCode)),
	}
}
