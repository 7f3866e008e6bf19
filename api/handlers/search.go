// ABOUTME: Search handler exposing the multi-source search orchestration endpoint
// ABOUTME: Validates the query and returns merged, ranked results with per-source errors

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/errors"
	"devpulse-search-api/core/orchestrator"
)

// SearchHandler handles search requests
type SearchHandler struct {
	orchestrator *orchestrator.Orchestrator
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(o *orchestrator.Orchestrator) *SearchHandler {
	return &SearchHandler{orchestrator: o}
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodPost,
		Path:        "/api/search",
		Summary:     "Search across content sources",
		Description: "Classifies the query, fans out to the relevant sources concurrently and returns merged, ranked results",
		Tags:        []string{"Search"},
	}, h.Search)
}

// SearchInput defines the input for a search request
type SearchInput struct {
	Body struct {
		Query string `json:"query" minLength:"3" maxLength:"300" doc:"Natural language search query"`
	}
}

// SearchOutput defines the output of a search request
type SearchOutput struct {
	Body struct {
		Query      string                `json:"query" doc:"The original query text"`
		Intent     IntentSummary         `json:"intent" doc:"How the query was interpreted"`
		Results    []domain.SearchResult `json:"results" doc:"Merged, ranked, deduplicated results"`
		TotalFound int                   `json:"total_found" doc:"Number of results returned"`
		Errors     []string              `json:"errors,omitempty" doc:"Per-source failures, if any"`
		FromCache  bool                  `json:"from_cache" doc:"Whether results were served from cache"`
	}
}

// IntentSummary is the client-facing view of a classified intent
type IntentSummary struct {
	Type          string              `json:"type" doc:"Detected intent category"`
	Confidence    float64             `json:"confidence" doc:"Classifier certainty in [0, 0.98]"`
	Sources       []string            `json:"sources" doc:"Sources queried, highest priority first"`
	Entities      map[string][]string `json:"entities,omitempty" doc:"Recognized entities by category"`
	Keywords      []string            `json:"keywords,omitempty" doc:"Significant query terms"`
	TimeSensitive bool                `json:"time_sensitive" doc:"Whether the query asks for fresh content"`
}

// Search handles the POST /api/search endpoint
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Body.Query)
	if len(query) < 3 {
		return nil, toHumaError(&errors.ValidationError{Field: "query", Message: "must be at least 3 characters"})
	}

	resp := h.orchestrator.Search(ctx, query)

	output := &SearchOutput{}
	output.Body.Query = resp.Query
	output.Body.Intent = IntentSummary{
		Type:          string(resp.Intent.Type),
		Confidence:    resp.Intent.Confidence,
		Sources:       resp.Intent.Sources,
		Entities:      resp.Intent.Entities,
		Keywords:      resp.Intent.Keywords,
		TimeSensitive: resp.Intent.TimeSensitive,
	}
	output.Body.Results = resp.Results
	output.Body.TotalFound = resp.TotalFound
	output.Body.Errors = resp.Errors
	output.Body.FromCache = resp.FromCache
	return output, nil
}
