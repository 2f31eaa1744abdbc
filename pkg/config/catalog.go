// Package config loads operation catalogs: the operations an integration
// exposes together with their response schemas, declared in YAML or JSON
// files or imported from an OpenAPI document.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/apivet/apivet/pkg/operation"
	"github.com/apivet/apivet/pkg/schema"
)

// Catalog is the parsed form of a catalog file.
type Catalog struct {
	Operations []*Entry `json:"operations" yaml:"operations"`
}

// Entry declares one operation and its response schema. Exactly one of
// Schema (declarative) or JSONSchema (raw JSON Schema document) must be set.
type Entry struct {
	Name     string            `json:"name" yaml:"name"`
	Method   string            `json:"method" yaml:"method"`
	Path     string            `json:"path" yaml:"path"`
	Required []string          `json:"required,omitempty" yaml:"required,omitempty"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	Schema     *schema.Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	JSONSchema interface{}    `json:"jsonSchema,omitempty" yaml:"jsonSchema,omitempty"`
}

// Operation converts the entry to its operation definition.
func (e *Entry) Operation() *operation.Operation {
	return &operation.Operation{
		Name:         e.Name,
		Method:       e.Method,
		PathTemplate: e.Path,
		Required:     e.Required,
		Headers:      e.Headers,
	}
}

// CompileSchema produces the entry's response schema, compiling the raw JSON
// Schema document when one is declared.
func (e *Entry) CompileSchema() (*schema.Schema, error) {
	switch {
	case e.Schema != nil && e.JSONSchema != nil:
		return nil, fmt.Errorf("operation %q declares both schema and jsonSchema", e.Name)
	case e.Schema != nil:
		return e.Schema, nil
	case e.JSONSchema != nil:
		doc, err := json.Marshal(e.JSONSchema)
		if err != nil {
			return nil, fmt.Errorf("operation %q: cannot encode jsonSchema: %w", e.Name, err)
		}
		s, err := schema.FromJSONSchema(doc)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", e.Name, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("operation %q declares no response schema", e.Name)
	}
}

// Validate checks the catalog for structural problems: missing fields and
// duplicate operation names.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for i, e := range c.Operations {
		if e == nil {
			return fmt.Errorf("operations[%d] is empty", i)
		}
		if e.Name == "" {
			return fmt.Errorf("operations[%d] has no name", i)
		}
		if e.Method == "" || e.Path == "" {
			return fmt.Errorf("operation %q requires a method and a path", e.Name)
		}
		if seen[e.Name] {
			return fmt.Errorf("operation %q declared twice", e.Name)
		}
		seen[e.Name] = true
		if _, err := e.CompileSchema(); err != nil {
			return err
		}
	}
	return nil
}

// Registries builds the operation and schema registries from the catalog,
// preserving the one-schema-per-operation invariant the validating client
// relies on.
func (c *Catalog) Registries() (*operation.Registry, *schema.Registry, error) {
	ops := operation.NewRegistry()
	schemas := schema.NewRegistry()

	for _, e := range c.Operations {
		if err := ops.Register(e.Operation()); err != nil {
			return nil, nil, err
		}
		s, err := e.CompileSchema()
		if err != nil {
			return nil, nil, err
		}
		if err := schemas.Register(e.Name, s); err != nil {
			return nil, nil, err
		}
	}

	return ops, schemas, nil
}

// Merge appends another catalog's operations to this one.
func (c *Catalog) Merge(other *Catalog) {
	c.Operations = append(c.Operations, other.Operations...)
}
