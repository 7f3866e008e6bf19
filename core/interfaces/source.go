// ABOUTME: ContentSource interface that all pluggable search backends implement
// ABOUTME: Defines the uniform contract the orchestrator queries sources through

package interfaces

import (
	"context"

	"devpulse-search-api/core/domain"
)

// ContentSource is the uniform contract wrapping one external content backend.
//
// Search must never return an error for "no results" - it returns an empty
// slice. It fails only with a *errors.SourceError (unavailable, rate limited,
// timeout or invalid filter). Implementations map their native fields onto
// domain.SearchResult and keep native score semantics source-local.
type ContentSource interface {
	// Name returns the source identifier (e.g. "github", "reddit")
	Name() string

	// DisplayName returns the human-readable name (e.g. "GitHub")
	DisplayName() string

	// Type returns what kind of content this source produces
	Type() domain.SourceType

	// Capabilities returns the source's static capability description
	Capabilities() domain.SourceCapabilities

	// Search executes one search against the backend
	Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error)
}
