// ABOUTME: Sources handler listing the registered content sources
// ABOUTME: Exposes each source's type and static capability description

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"devpulse-search-api/core/registry"
)

// SourcesHandler handles source listing requests
type SourcesHandler struct {
	registry *registry.Registry
}

// NewSourcesHandler creates a new sources handler
func NewSourcesHandler(r *registry.Registry) *SourcesHandler {
	return &SourcesHandler{registry: r}
}

// RegisterRoutes registers source routes
func (h *SourcesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/api/sources",
		Summary:     "List available content sources",
		Description: "Returns every registered source with its capabilities",
		Tags:        []string{"Sources"},
	}, h.ListSources)
}

// SourceInfo describes one registered source
type SourceInfo struct {
	Name             string   `json:"name" doc:"Source identifier"`
	DisplayName      string   `json:"display_name" doc:"Human-readable name"`
	Type             string   `json:"type" doc:"Kind of content the source returns"`
	SupportedFilters []string `json:"supported_filters,omitempty" doc:"Filter names the source understands"`
	SupportsSort     bool     `json:"supports_sort" doc:"Whether the source accepts a sort preference"`
	MaxResultLimit   int      `json:"max_result_limit" doc:"Most results one call may request"`
}

// SourcesOutput defines the output for source listing
type SourcesOutput struct {
	Body struct {
		Sources []SourceInfo `json:"sources" doc:"Registered sources in registration order"`
	}
}

// ListSources handles the GET /api/sources endpoint
func (h *SourcesHandler) ListSources(_ context.Context, _ *struct{}) (*SourcesOutput, error) {
	sources := h.registry.All()

	output := &SourcesOutput{}
	output.Body.Sources = make([]SourceInfo, 0, len(sources))
	for _, src := range sources {
		caps := src.Capabilities()
		output.Body.Sources = append(output.Body.Sources, SourceInfo{
			Name:             src.Name(),
			DisplayName:      src.DisplayName(),
			Type:             string(src.Type()),
			SupportedFilters: caps.SupportedFilters,
			SupportsSort:     caps.SupportsSort,
			MaxResultLimit:   caps.MaxResultLimit,
		})
	}
	return output, nil
}
