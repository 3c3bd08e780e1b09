// ABOUTME: Error types and handling for the KVK Insights library
// ABOUTME: Structured configuration errors plus predicates over the core error types

package kvkinsights

import (
	"errors"
	"fmt"

	coreerrors "kvk-insights-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common errors
var (
	// ErrClientClosed is returned when operations are attempted on a closed client
	ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

	// ErrChatNotConfigured is returned by Chat without an LLM endpoint and key
	ErrChatNotConfigured = NewError(ErrorTypeConfiguration, "no chat model configured")
)

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsValidationError reports invalid input such as a malformed registration number
func IsValidationError(err error) bool {
	return coreerrors.IsValidation(err)
}

// IsNotFoundError reports an unknown company or an expired parked query
func IsNotFoundError(err error) bool {
	return coreerrors.IsNotFound(err)
}

// IsSourceUnavailableError reports that the registry could not be reached
func IsSourceUnavailableError(err error) bool {
	return coreerrors.IsSourceUnavailable(err)
}
