package operation

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the operations an integration exposes, keyed by name.
// Read-only after setup; concurrent lookups need no external locking.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]*Operation
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// Register adds an operation. Re-registering a name is a setup bug and
// returns an error.
func (r *Registry) Register(op *Operation) error {
	if op == nil {
		return fmt.Errorf("operation is nil")
	}
	if op.Name == "" {
		return fmt.Errorf("operation requires a name")
	}
	if op.Method == "" || op.PathTemplate == "" {
		return fmt.Errorf("operation %q requires a method and a path", op.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[op.Name]; exists {
		return fmt.Errorf("operation %q already registered", op.Name)
	}
	r.ops[op.Name] = op
	return nil
}

// Lookup returns the operation with the given name.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
