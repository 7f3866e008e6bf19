// ABOUTME: Search request/response domain models for the orchestration engine
// ABOUTME: Defines typed filters, source capabilities and the cached entry shape

package domain

import "time"

// SearchFilters is the fixed, typed set of optional per-source filters.
// Unsupported filter names cannot exist here; unset fields are the zero value
// (MinScore uses a pointer so "no floor" and "floor of zero" are distinct).
type SearchFilters struct {
	// Language restricts results to a programming language, where supported
	Language string

	// MinScore is the minimum native score (stars/points) to accept
	MinScore *int

	// SortBy is one of the source's advertised sort options
	SortBy string

	// TimeWindow restricts results by age: "day", "week", "month" or "year"
	TimeWindow string
}

// Filter names a source can advertise in its capabilities.
const (
	FilterLanguage   = "language"
	FilterMinScore   = "min_score"
	FilterSort       = "sort"
	FilterTimeWindow = "time_window"
)

// SourceCapabilities describes, statically, what one source can do.
// The orchestrator queries this up front to decide which filters are safe
// to pass; there is no runtime attribute probing.
type SourceCapabilities struct {
	// SupportedFilters lists the filter names the source understands
	SupportedFilters []string

	// SupportsSort indicates the source accepts a sort preference
	SupportsSort bool

	// MaxResultLimit is the most results one search call may request
	MaxResultLimit int

	// PrecisionSensitive marks sources whose search syntax ANDs every
	// term, so over-long queries starve them of results
	PrecisionSensitive bool
}

// Supports reports whether the named filter is advertised.
func (c SourceCapabilities) Supports(filter string) bool {
	for _, f := range c.SupportedFilters {
		if f == filter {
			return true
		}
	}
	return false
}

// SearchResponse is the full outcome of one orchestrated search.
type SearchResponse struct {
	// Query is the original query text
	Query string `json:"query"`

	// Intent echoes the classification the search was executed under
	Intent Intent `json:"intent"`

	// Results is the merged, ranked, deduplicated result list
	Results []SearchResult `json:"results"`

	// TotalFound is len(Results) after truncation
	TotalFound int `json:"total_found"`

	// Errors lists per-source failure descriptions; empty when all succeeded
	Errors []string `json:"errors,omitempty"`

	// FromCache indicates the results were served from the result cache
	FromCache bool `json:"from_cache"`
}

// CachedSearch is the logical cache entry for one query+intent combination.
// It is mutated only to increment HitCount on subsequent hits.
type CachedSearch struct {
	// Key is the hash the entry is stored under
	Key string `json:"key"`

	// Results is the truncated result list written on the original miss
	Results []SearchResult `json:"results"`

	// CreatedAt is when the entry was written
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being served
	ExpiresAt time.Time `json:"expires_at"`

	// HitCount is how many times the entry has been served
	HitCount int `json:"hit_count"`
}

// Expired reports whether the entry is past its TTL at the given time.
func (c CachedSearch) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
