// ABOUTME: Hand-rolled mocks for orchestrator tests
// ABOUTME: Provides a func-field content source and an in-memory cache backend

package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"devpulse-search-api/core/domain"
)

// mockSource implements interfaces.ContentSource with a pluggable search
// function and a call recorder.
type mockSource struct {
	name     string
	caps     domain.SourceCapabilities
	searchFn func(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error)

	calls   atomic.Int32
	mu      sync.Mutex
	filters []domain.SearchFilters
	queries []string
}

func (m *mockSource) Name() string                          { return m.name }
func (m *mockSource) DisplayName() string                   { return m.name }
func (m *mockSource) Type() domain.SourceType               { return domain.SourceTypeRepository }
func (m *mockSource) Capabilities() domain.SourceCapabilities { return m.caps }

func (m *mockSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.filters = append(m.filters, filters)
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit, filters)
	}
	return nil, nil
}

func (m *mockSource) callCount() int {
	return int(m.calls.Load())
}

func (m *mockSource) recordedFilters() []domain.SearchFilters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SearchFilters(nil), m.filters...)
}

// staticResults builds a searchFn returning fixed results.
func staticResults(results ...domain.SearchResult) func(context.Context, string, int, domain.SearchFilters) ([]domain.SearchResult, error) {
	return func(context.Context, string, int, domain.SearchFilters) ([]domain.SearchResult, error) {
		return results, nil
	}
}

// memBackend is a minimal interfaces.Cache for cache-path tests.
type memBackend struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemBackend() *memBackend {
	return &memBackend{entries: make(map[string][]byte)}
}

func (m *memBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *memBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
