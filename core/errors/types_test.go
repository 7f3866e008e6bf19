package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSourceErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     SourceErrorKind
		expected string
	}{
		{SourceUnavailable, "unavailable"},
		{SourceRateLimited, "rate_limited"},
		{SourceTimeout, "timeout"},
		{SourceInvalidFilter, "invalid_filter"},
		{SourceErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("String() = %v, want %v", got, tt.expected)
		}
	}
}

func TestSourceError_Error(t *testing.T) {
	err := &SourceError{
		Source:  "github",
		Kind:    SourceUnavailable,
		Message: "connection refused",
	}

	expected := "source github unavailable: connection refused"
	if err.Error() != expected {
		t.Errorf("SourceError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestSourceError_ErrorIncludesStatusCode(t *testing.T) {
	err := &SourceError{
		Source:     "hackernews",
		Kind:       SourceRateLimited,
		StatusCode: 429,
		Message:    "quota exhausted",
	}

	expected := "source hackernews rate_limited (status 429): quota exhausted"
	if err.Error() != expected {
		t.Errorf("SourceError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "query",
		Message: "must be at least 3 characters",
	}

	expected := "validation error on field 'query': must be at least 3 characters"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestSourceErrorFromStatus_429IsRateLimited(t *testing.T) {
	err := SourceErrorFromStatus("devto", 429, "too many requests")

	if err.Kind != SourceRateLimited {
		t.Errorf("Kind = %v, want %v", err.Kind, SourceRateLimited)
	}
	if err.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", err.StatusCode)
	}
}

func TestSourceErrorFromStatus_OtherStatusesAreUnavailable(t *testing.T) {
	for _, status := range []int{500, 502, 503, 404} {
		err := SourceErrorFromStatus("reddit", status, "backend error")

		if err.Kind != SourceUnavailable {
			t.Errorf("status %d: Kind = %v, want %v", status, err.Kind, SourceUnavailable)
		}
	}
}

func TestIsSourceError_True(t *testing.T) {
	err := NewSourceError("github", SourceTimeout, "deadline exceeded")

	srcErr, ok := IsSourceError(err)
	if !ok {
		t.Fatal("IsSourceError should return true for SourceError")
	}
	if srcErr.Source != "github" {
		t.Errorf("Source = %v, want github", srcErr.Source)
	}
}

func TestIsSourceError_False(t *testing.T) {
	err := errors.New("some other error")

	if _, ok := IsSourceError(err); ok {
		t.Error("IsSourceError should return false for non-SourceError")
	}
}

func TestIsSourceError_WrappedError(t *testing.T) {
	srcErr := NewSourceError("stocks", SourceUnavailable, "quote service down")
	wrapped := fmt.Errorf("searching stocks: %w", srcErr)

	if _, ok := IsSourceError(wrapped); !ok {
		t.Error("IsSourceError should return true for wrapped SourceError")
	}
}

func TestIsRateLimited(t *testing.T) {
	rateLimited := SourceErrorFromStatus("github", 429, "quota")
	timeout := NewSourceError("github", SourceTimeout, "slow")

	if !IsRateLimited(rateLimited) {
		t.Error("IsRateLimited should return true for a rate-limited SourceError")
	}
	if IsRateLimited(timeout) {
		t.Error("IsRateLimited should return false for a timeout SourceError")
	}
	if IsRateLimited(errors.New("plain error")) {
		t.Error("IsRateLimited should return false for a plain error")
	}
}

func TestIsTimeout(t *testing.T) {
	timeout := NewSourceError("reddit", SourceTimeout, "deadline exceeded")
	wrapped := fmt.Errorf("fan-out: %w", timeout)

	if !IsTimeout(timeout) {
		t.Error("IsTimeout should return true for a timeout SourceError")
	}
	if !IsTimeout(wrapped) {
		t.Error("IsTimeout should return true for a wrapped timeout SourceError")
	}
	if IsTimeout(NewSourceError("reddit", SourceUnavailable, "down")) {
		t.Error("IsTimeout should return false for a non-timeout SourceError")
	}
}

func TestIsValidation_True(t *testing.T) {
	err := &ValidationError{
		Field:   "query",
		Message: "required",
	}

	if !IsValidation(err) {
		t.Error("IsValidation should return true for ValidationError")
	}
}

func TestIsValidation_False(t *testing.T) {
	err := errors.New("some other error")

	if IsValidation(err) {
		t.Error("IsValidation should return false for non-ValidationError")
	}
}

func TestWrapError_PreservesOriginalError(t *testing.T) {
	originalErr := NewSourceError("github", SourceUnavailable, "connection refused")
	wrappedErr := WrapError(originalErr, "failed to search")

	if wrappedErr == nil {
		t.Fatal("WrapError should not return nil for non-nil error")
	}

	// Check error message contains both context and original error
	expectedMsg := "failed to search: source github unavailable: connection refused"
	if wrappedErr.Error() != expectedMsg {
		t.Errorf("WrapError message = %v, want %v", wrappedErr.Error(), expectedMsg)
	}

	// Should still be identifiable as SourceError
	if _, ok := IsSourceError(wrappedErr); !ok {
		t.Error("Wrapped error should still be identifiable as SourceError")
	}
}

func TestWrapError_AddsContextMessage(t *testing.T) {
	originalErr := errors.New("network timeout")
	wrappedErr := WrapError(originalErr, "external API call failed")

	expected := "external API call failed: network timeout"
	if wrappedErr.Error() != expected {
		t.Errorf("WrapError = %v, want %v", wrappedErr.Error(), expected)
	}
}

func TestWrapError_HandlesNilError(t *testing.T) {
	wrappedErr := WrapError(nil, "this should not happen")

	if wrappedErr != nil {
		t.Error("WrapError should return nil when wrapping nil error")
	}
}
