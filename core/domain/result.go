// ABOUTME: Search result domain models shared by all content sources
// ABOUTME: Defines the common result shape and URL-based identity for deduplication

package domain

import (
	"net/url"
	"strings"
	"time"
)

// SourceType describes what kind of content a source returns.
type SourceType string

const (
	SourceTypeRepository SourceType = "repository"
	SourceTypeDiscussion SourceType = "discussion"
	SourceTypeArticle    SourceType = "article"
	SourceTypeMarket     SourceType = "market"
)

// SearchResult is the standardized result shape every source maps into.
//
// Score carries the source-native popularity unit (stars, upvotes, points)
// and is NOT comparable across sources. RelevanceScore (0-100) is the only
// cross-source-comparable ranking signal.
type SearchResult struct {
	// Title is the result's display title
	Title string `json:"title"`

	// URL identifies the result; its normalized form is the dedup key
	URL string `json:"url"`

	// Source is the name of the source that produced this result
	Source string `json:"source"`

	// Type describes the kind of content
	Type SourceType `json:"type"`

	// Description is a short summary, may be empty
	Description string `json:"description,omitempty"`

	// Author is the result's author or owner, may be empty
	Author string `json:"author,omitempty"`

	// Score is the source-native popularity value
	Score int `json:"score"`

	// RelevanceScore is the cross-source ranking score in [0,100]
	RelevanceScore float64 `json:"relevance_score"`

	// Tags are source-provided topic labels
	Tags []string `json:"tags,omitempty"`

	// PublishedAt is when the content was published or last updated
	PublishedAt time.Time `json:"published_at,omitempty"`

	// Metadata carries source-specific extras (language, forks, symbol, ...)
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NormalizeURL reduces a URL to its deduplication identity:
// lowercased scheme and host plus the path, with the fragment and any
// trailing slash stripped. The query string is kept because it carries
// identity for sources that address content by id (item?id=N pages).
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(strings.ToLower(raw))
	}

	path := strings.TrimSuffix(u.Path, "/")
	normalized := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
	if u.RawQuery != "" {
		normalized += "?" + u.RawQuery
	}
	return normalized
}
