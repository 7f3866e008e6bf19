// ABOUTME: Static registry of content sources, populated once at startup
// ABOUTME: Read-only after registration; preserves registration order for determinism

package registry

import (
	"fmt"

	"devpulse-search-api/core/interfaces"
)

// Registry is the central lookup table for content sources. It is built
// during process startup and never mutated afterwards, so lookups need
// no locking.
type Registry struct {
	byName map[string]interfaces.ContentSource
	order  []interfaces.ContentSource
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]interfaces.ContentSource),
	}
}

// Register adds a source. Registering the same name twice is a wiring bug
// and returns an error.
func (r *Registry) Register(source interfaces.ContentSource) error {
	name := source.Name()
	if name == "" {
		return fmt.Errorf("source has empty name")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("source %q already registered", name)
	}

	r.byName[name] = source
	r.order = append(r.order, source)
	return nil
}

// Get returns the source registered under name, or nil if unknown.
func (r *Registry) Get(name string) interfaces.ContentSource {
	return r.byName[name]
}

// All returns every registered source in registration order.
func (r *Registry) All() []interfaces.ContentSource {
	return r.order
}

// Names returns all registered source names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, source := range r.order {
		names = append(names, source.Name())
	}
	return names
}

// OrderIndex returns the registration position of the named source, used
// as the deterministic final tie-break when merging results. Unknown
// sources sort last.
func (r *Registry) OrderIndex(name string) int {
	for i, source := range r.order {
		if source.Name() == name {
			return i
		}
	}
	return len(r.order)
}
