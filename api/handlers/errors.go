// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"devpulse-search-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if srcErr, ok := errors.IsSourceError(err); ok {
		switch srcErr.Kind {
		case errors.SourceRateLimited:
			return huma.Error429TooManyRequests("Rate limited by " + srcErr.Source)
		case errors.SourceTimeout:
			return huma.Error504GatewayTimeout(srcErr.Source+" timed out", err)
		case errors.SourceInvalidFilter:
			return huma.Error400BadRequest(err.Error())
		default:
			return huma.Error503ServiceUnavailable(srcErr.Source+" unavailable", err)
		}
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
