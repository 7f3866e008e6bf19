// Package core contains the business logic for the DevPulse search service.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Intent, SearchResult, filters, cache entries)
// - intent: Query classification into structured intents
// - relevance: Cross-source relevance scoring and ranking
// - registry: The registry of pluggable content sources
// - orchestrator: Concurrent multi-source search orchestration
// - searchcache: The TTL'd search result cache
// - sources: Concrete content source adapters
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "devpulse-search-api/core/intent"
//	    "devpulse-search-api/core/orchestrator"
//	    "devpulse-search-api/core/registry"
//	    "devpulse-search-api/core/relevance"
//	    "devpulse-search-api/core/searchcache"
//	)
//
//	// Register sources and wire the orchestrator
//	reg := registry.NewRegistry()
//	reg.Register(myGitHubSource)
//
//	cache := searchcache.NewSearchCache(myCache, myLogger, 24*time.Hour)
//	orch := orchestrator.NewOrchestrator(
//	    intent.NewClassifier(), reg, relevance.NewScorer(), cache, myLogger,
//	)
//
//	// Run a search
//	resp := orch.Search(ctx, "python web scraping library")
package core
