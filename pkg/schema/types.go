package schema

// Value types recognized by declarative schemas. Integer is a number with no
// fractional part.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Field declares the constraints for a single response field. Zero-value
// members mean "not constrained".
type Field struct {
	// Type is the expected value type, one of the Type* constants.
	// Empty means any type is accepted.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Required marks the field as mandatory in its enclosing object.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Nullable permits an explicit null even when Type is set.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// String constraints.
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`

	// Numeric bounds, inclusive. Apply to number and integer types.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Array constraints.
	MinItems *int   `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int   `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Items    *Field `json:"items,omitempty" yaml:"items,omitempty"`

	// Enum restricts the value to one of the listed values.
	Enum []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Properties declares constraints for nested object fields. Fields of the
	// object not listed here are ignored.
	Properties map[string]*Field `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Schema describes the expected shape of one operation's response body.
// Exactly one of the declarative members (Fields/Items) or the compiled JSON
// Schema is populated.
type Schema struct {
	// Type of the root value: TypeObject (default) or TypeArray.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Fields declares per-field constraints for an object root.
	Fields map[string]*Field `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Items declares constraints for the elements of an array root.
	Items *Field `json:"items,omitempty" yaml:"items,omitempty"`

	// compiled backs the schema with a raw JSON Schema document instead of
	// declarative fields. Set via FromJSONSchema.
	compiled *compiledJSONSchema
}

// Object builds a Schema for an object-rooted response.
func Object(fields map[string]*Field) *Schema {
	return &Schema{Type: TypeObject, Fields: fields}
}

// Array builds a Schema for an array-rooted response whose elements all
// satisfy item.
func Array(item *Field) *Schema {
	return &Schema{Type: TypeArray, Items: item}
}

// Int returns a pointer to v, for use in Field literals.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for use in Field literals.
func Float(v float64) *float64 { return &v }
