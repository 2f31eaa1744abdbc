package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compiledJSONSchema wraps a compiled JSON Schema document so it can back a
// Schema in place of declarative fields.
type compiledJSONSchema struct {
	schema *jsonschema.Schema
}

// FromJSONSchema compiles a raw JSON Schema document (draft 2020-12) into a
// Schema. Teams that already maintain JSON Schema contracts for a partner can
// reuse them directly instead of re-declaring fields.
//
// Note that JSON Schema shares this package's non-strict stance: properties
// the document does not declare are ignored unless the document itself sets
// additionalProperties.
func FromJSONSchema(doc []byte) (*Schema, error) {
	// Round-trip through interface{} so YAML-sourced documents with
	// non-string keys still compile.
	var raw interface{}
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON Schema document: %w", err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize JSON Schema document: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", strings.NewReader(string(normalized))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile JSON Schema: %w", err)
	}

	return &Schema{compiled: &compiledJSONSchema{schema: compiled}}, nil
}

func (c *compiledJSONSchema) validate(parsed interface{}) []Violation {
	err := c.schema.Validate(parsed)
	if err == nil {
		return nil
	}

	var violations []Violation
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		collectJSONSchemaErrors(verr, &violations)
	} else {
		violations = append(violations, Violation{Code: CodeSchema, Message: err.Error()})
	}
	return violations
}

// collectJSONSchemaErrors flattens the validation error tree into one
// violation per leaf cause, converting JSON Pointer locations to dot paths.
func collectJSONSchemaErrors(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{
			Field:   pointerToFieldPath(err.InstanceLocation),
			Code:    CodeSchema,
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectJSONSchemaErrors(cause, out)
	}
}

func pointerToFieldPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(ptr, "/"), "/", ".")
}
