package schema

import (
	"fmt"
	"sync"
)

// Registry holds exactly one Schema per operation name. Registration happens
// at setup; after that the registry is read-only and safe for concurrent
// lookups from parallel calls.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register associates a schema with an operation name. Registering the same
// name twice is a setup bug and returns an error rather than silently
// replacing the earlier schema.
func (r *Registry) Register(operation string, s *Schema) error {
	if operation == "" {
		return fmt.Errorf("schema registration requires an operation name")
	}
	if s == nil {
		return fmt.Errorf("schema for operation %q is nil", operation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[operation]; exists {
		return fmt.Errorf("schema for operation %q already registered", operation)
	}
	r.schemas[operation] = s
	return nil
}

// Lookup returns the schema for an operation name.
func (r *Registry) Lookup(operation string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[operation]
	return s, ok
}

// Names returns the registered operation names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}
