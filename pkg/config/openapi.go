package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apivet/apivet/pkg/schema"
)

// ImportOpenAPIFile derives a Catalog from an OpenAPI 3 document on disk.
// Partners that publish even a stale OpenAPI spec give us operation names,
// path templates, and response shapes for free; the result can be merged
// with hand-written catalog entries for everything the spec gets wrong.
//
// Operations without a JSON response schema are skipped: the validating
// client requires exactly one schema per operation and an unchecked
// operation would break that invariant silently.
func ImportOpenAPIFile(path string) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	return importDoc(loader, doc)
}

// ImportOpenAPIData derives a Catalog from OpenAPI document bytes (JSON or
// YAML).
func ImportOpenAPIData(data []byte) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	return importDoc(loader, doc)
}

func importDoc(loader *openapi3.Loader, doc *openapi3.T) (*Catalog, error) {
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	catalog := &Catalog{}

	paths := doc.Paths.Map()
	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, p := range pathKeys {
		item := paths[p]
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			respSchema := jsonResponseSchema(op)
			if respSchema == nil {
				continue
			}

			name := op.OperationID
			if name == "" {
				name = synthesizeName(method, p)
			}

			catalog.Operations = append(catalog.Operations, &Entry{
				Name:     name,
				Method:   method,
				Path:     p,
				Required: requiredParams(op),
				Schema:   convertRootSchema(respSchema),
			})
		}
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// jsonResponseSchema finds the JSON schema of the operation's success
// response, preferring 200 and falling back to the default response.
func jsonResponseSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.Responses == nil {
		return nil
	}
	for _, ref := range []*openapi3.ResponseRef{op.Responses.Status(200), op.Responses.Default()} {
		if ref == nil || ref.Value == nil {
			continue
		}
		media := ref.Value.Content.Get("application/json")
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		return media.Schema.Value
	}
	return nil
}

// requiredParams collects the names of required path and query parameters.
func requiredParams(op *openapi3.Operation) []string {
	var names []string
	for _, ref := range op.Parameters {
		if ref.Value == nil {
			continue
		}
		p := ref.Value
		if p.Required && (p.In == openapi3.ParameterInPath || p.In == openapi3.ParameterInQuery) {
			names = append(names, p.Name)
		}
	}
	return names
}

func convertRootSchema(s *openapi3.Schema) *schema.Schema {
	if s.Type != nil && s.Type.Is(openapi3.TypeArray) {
		var item *schema.Field
		if s.Items != nil && s.Items.Value != nil {
			item = convertField(s.Items.Value, false)
		}
		return schema.Array(item)
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	fields := make(map[string]*schema.Field, len(s.Properties))
	for name, ref := range s.Properties {
		if ref.Value == nil {
			continue
		}
		fields[name] = convertField(ref.Value, required[name])
	}
	return schema.Object(fields)
}

func convertField(s *openapi3.Schema, required bool) *schema.Field {
	f := &schema.Field{
		Required: required,
		Nullable: s.Nullable,
		Pattern:  s.Pattern,
		Format:   s.Format,
		Min:      s.Min,
		Max:      s.Max,
		Enum:     s.Enum,
	}

	if s.Type != nil {
		switch {
		case s.Type.Is(openapi3.TypeString):
			f.Type = schema.TypeString
		case s.Type.Is(openapi3.TypeInteger):
			f.Type = schema.TypeInteger
		case s.Type.Is(openapi3.TypeNumber):
			f.Type = schema.TypeNumber
		case s.Type.Is(openapi3.TypeBoolean):
			f.Type = schema.TypeBoolean
		case s.Type.Is(openapi3.TypeArray):
			f.Type = schema.TypeArray
		case s.Type.Is(openapi3.TypeObject):
			f.Type = schema.TypeObject
		}
	}

	if s.MinLength > 0 {
		f.MinLength = schema.Int(int(s.MinLength))
	}
	if s.MaxLength != nil {
		f.MaxLength = schema.Int(int(*s.MaxLength))
	}
	if s.MinItems > 0 {
		f.MinItems = schema.Int(int(s.MinItems))
	}
	if s.MaxItems != nil {
		f.MaxItems = schema.Int(int(*s.MaxItems))
	}

	if s.Items != nil && s.Items.Value != nil {
		f.Items = convertField(s.Items.Value, false)
	}
	if len(s.Properties) > 0 {
		requiredProps := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			requiredProps[name] = true
		}
		f.Properties = make(map[string]*schema.Field, len(s.Properties))
		for name, ref := range s.Properties {
			if ref.Value == nil {
				continue
			}
			f.Properties[name] = convertField(ref.Value, requiredProps[name])
		}
	}

	return f
}

// synthesizeName builds an operation name from method and path when the
// document has no operationId: GET /companies/{id} -> getCompaniesId.
func synthesizeName(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, segment := range strings.Split(path, "/") {
		segment = strings.Trim(segment, "{}")
		if segment == "" {
			continue
		}
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	return b.String()
}
