// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"kvk-insights-api/core/errors"
	"kvk-insights-api/core/resolver"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return huma.Error400BadRequest("Invalid request", &huma.ErrorDetail{
			Location: validationErr.Field,
			Message:  validationErr.Message,
		})
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	// An upstream API error takes precedence over the source wrapper so its
	// status code can be mapped
	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			return huma.Error500InternalServerError("Unexpected external service response", err)
		}
	}

	var unavailable *errors.SourceUnavailableError
	if stderrors.As(err, &unavailable) {
		if unavailable.Source == resolver.RegistrySource {
			return huma.Error503ServiceUnavailable("Company registry is unavailable", err)
		}
		return huma.Error503ServiceUnavailable("Service temporarily unavailable, please retry", err)
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
