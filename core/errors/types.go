// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides the per-source failure taxonomy and validation errors

package errors

import (
	"errors"
	"fmt"
)

// SourceErrorKind enumerates the ways a content source is allowed to fail.
// "No results" is never an error; adapters return an empty slice for that.
type SourceErrorKind int

const (
	// SourceUnavailable means the backend or network is down
	SourceUnavailable SourceErrorKind = iota

	// SourceRateLimited means the backend rejected us for quota reasons
	SourceRateLimited

	// SourceTimeout means the call exceeded its deadline
	SourceTimeout

	// SourceInvalidFilter means a filter value the source cannot accept
	SourceInvalidFilter
)

// String returns a short name for the failure kind.
func (k SourceErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "unavailable"
	case SourceRateLimited:
		return "rate_limited"
	case SourceTimeout:
		return "timeout"
	case SourceInvalidFilter:
		return "invalid_filter"
	default:
		return "unknown"
	}
}

// SourceError represents a failure of one content source. It is isolated
// at the fan-out boundary and never fails the whole request.
type SourceError struct {
	Source     string
	Kind       SourceErrorKind
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("source %s %s (status %d): %s", e.Source, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("source %s %s: %s", e.Source, e.Kind, e.Message)
}

// NewSourceError creates a SourceError for the given source and kind.
func NewSourceError(source string, kind SourceErrorKind, message string) *SourceError {
	return &SourceError{Source: source, Kind: kind, Message: message}
}

// SourceErrorFromStatus maps an HTTP status code from a backend to the
// taxonomy: 429 is rate limiting, everything else non-2xx is unavailability.
func SourceErrorFromStatus(source string, statusCode int, message string) *SourceError {
	kind := SourceUnavailable
	if statusCode == 429 {
		kind = SourceRateLimited
	}
	return &SourceError{Source: source, Kind: kind, StatusCode: statusCode, Message: message}
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

// IsSourceError checks if an error is a SourceError and returns it.
func IsSourceError(err error) (*SourceError, bool) {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr, true
	}
	return nil, false
}

// IsRateLimited checks if an error is a rate-limiting SourceError.
func IsRateLimited(err error) bool {
	srcErr, ok := IsSourceError(err)
	return ok && srcErr.Kind == SourceRateLimited
}

// IsTimeout checks if an error is a timeout SourceError.
func IsTimeout(err error) bool {
	srcErr, ok := IsSourceError(err)
	return ok && srcErr.Kind == SourceTimeout
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
