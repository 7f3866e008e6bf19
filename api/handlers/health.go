// ABOUTME: Health handler reporting service status and cache statistics
// ABOUTME: Used by load balancers and for quick operational checks

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"devpulse-search-api/core/registry"
	"devpulse-search-api/core/searchcache"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	registry *registry.Registry
	cache    *searchcache.SearchCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(r *registry.Registry, c *searchcache.SearchCache) *HealthHandler {
	return &HealthHandler{registry: r, cache: c}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the health check response
type HealthOutput struct {
	Body struct {
		Status      string `json:"status" doc:"Always 'ok' when the service is up"`
		Sources     int    `json:"sources" doc:"Number of registered content sources"`
		CacheHits   int64  `json:"cache_hits" doc:"Result cache hits since startup"`
		CacheMisses int64  `json:"cache_misses" doc:"Result cache misses since startup"`
	}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	output := &HealthOutput{}
	output.Body.Status = "ok"
	output.Body.Sources = len(h.registry.Names())

	if h.cache != nil {
		hits, misses := h.cache.Stats()
		output.Body.CacheHits = hits
		output.Body.CacheMisses = misses
	}
	return output, nil
}
