// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates invalid input, missing entities and unreachable upstream sources

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// SourceUnavailableError is returned when an upstream data source failed or
// timed out. It is distinct from an empty result, which is a success.
type SourceUnavailableError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source %s unavailable", e.Source)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying cause
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NewSourceUnavailable wraps err as a SourceUnavailableError for source
func NewSourceUnavailable(source string, err error) error {
	return &SourceUnavailableError{Source: source, Err: err}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsSourceUnavailable checks if an error is a SourceUnavailableError
func IsSourceUnavailable(err error) bool {
	var srcErr *SourceUnavailableError
	return errors.As(err, &srcErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
