package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Types(t *testing.T) {
	tests := []struct {
		name      string
		field     *Field
		value     interface{}
		wantValid bool
		wantCode  string
	}{
		{
			name:      "string matches",
			field:     &Field{Type: TypeString},
			value:     "hello",
			wantValid: true,
		},
		{
			name:      "string mismatch",
			field:     &Field{Type: TypeString},
			value:     float64(12),
			wantValid: false,
			wantCode:  CodeType,
		},
		{
			name:      "number matches float",
			field:     &Field{Type: TypeNumber},
			value:     12.5,
			wantValid: true,
		},
		{
			name:      "integer matches whole number",
			field:     &Field{Type: TypeInteger},
			value:     float64(42),
			wantValid: true,
		},
		{
			name:      "integer rejects fraction",
			field:     &Field{Type: TypeInteger},
			value:     42.5,
			wantValid: false,
			wantCode:  CodeType,
		},
		{
			name:      "boolean matches",
			field:     &Field{Type: TypeBoolean},
			value:     true,
			wantValid: true,
		},
		{
			name:      "null rejected without nullable",
			field:     &Field{Type: TypeString},
			value:     nil,
			wantValid: false,
			wantCode:  CodeType,
		},
		{
			name:      "null allowed with nullable",
			field:     &Field{Type: TypeString, Nullable: true},
			value:     nil,
			wantValid: true,
		},
		{
			name:      "untyped field accepts anything",
			field:     &Field{},
			value:     []interface{}{"a"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Object(map[string]*Field{"v": tt.field})
			err := s.Validate(map[string]interface{}{"v": tt.value})

			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			var failure *Failure
			require.ErrorAs(t, err, &failure)
			require.Len(t, failure.Violations, 1)
			assert.Equal(t, "v", failure.Violations[0].Field)
			assert.Equal(t, tt.wantCode, failure.Violations[0].Code)
		})
	}
}

func TestValidate_Constraints(t *testing.T) {
	tests := []struct {
		name     string
		field    *Field
		value    interface{}
		wantCode string
	}{
		{
			name:     "below minimum",
			field:    &Field{Type: TypeInteger, Min: Float(0)},
			value:    float64(-1),
			wantCode: CodeMin,
		},
		{
			name:     "above maximum",
			field:    &Field{Type: TypeNumber, Max: Float(100)},
			value:    float64(101),
			wantCode: CodeMax,
		},
		{
			name:     "too short",
			field:    &Field{Type: TypeString, MinLength: Int(3)},
			value:    "ab",
			wantCode: CodeMinLen,
		},
		{
			name:     "too long",
			field:    &Field{Type: TypeString, MaxLength: Int(3)},
			value:    "abcd",
			wantCode: CodeMaxLen,
		},
		{
			name:     "pattern mismatch",
			field:    &Field{Type: TypeString, Pattern: `^C-\d+$`},
			value:    "X-42",
			wantCode: CodePattern,
		},
		{
			name:     "bad uuid",
			field:    &Field{Type: TypeString, Format: "uuid"},
			value:    "not-a-uuid",
			wantCode: CodeFormat,
		},
		{
			name:     "enum miss",
			field:    &Field{Type: TypeString, Enum: []interface{}{"active", "dormant"}},
			value:    "gone",
			wantCode: CodeEnum,
		},
		{
			name:     "too few items",
			field:    &Field{Type: TypeArray, MinItems: Int(2)},
			value:    []interface{}{"only"},
			wantCode: CodeMinItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Object(map[string]*Field{"v": tt.field})
			err := s.Validate(map[string]interface{}{"v": tt.value})

			var failure *Failure
			require.ErrorAs(t, err, &failure)
			require.Len(t, failure.Violations, 1)
			assert.Equal(t, tt.wantCode, failure.Violations[0].Code)
		})
	}
}

func TestValidate_RequiredField(t *testing.T) {
	s := Object(map[string]*Field{
		"id":   {Type: TypeString, Required: true},
		"note": {Type: TypeString},
	})

	err := s.Validate(map[string]interface{}{"note": "present"})

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "id", failure.Violations[0].Field)
	assert.Equal(t, CodeRequired, failure.Violations[0].Code)

	// Optional fields may simply be absent.
	assert.NoError(t, s.Validate(map[string]interface{}{"id": "c-1"}))
}

func TestValidate_UndeclaredFieldsPass(t *testing.T) {
	s := Object(map[string]*Field{
		"id": {Type: TypeString, Required: true},
	})

	body := map[string]interface{}{
		"id":          "c-1",
		"legacyFlags": map[string]interface{}{"weird": true},
		"padding":     []interface{}{1, 2, 3},
	}

	assert.NoError(t, s.Validate(body))
}

func TestValidate_NestedPaths(t *testing.T) {
	s := Object(map[string]*Field{
		"address": {
			Type: TypeObject,
			Properties: map[string]*Field{
				"zip": {Type: TypeString, Required: true},
			},
		},
	})

	err := s.Validate(map[string]interface{}{
		"address": map[string]interface{}{"street": "Main"},
	})

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "address.zip", failure.Violations[0].Field)
}

func TestValidate_ArrayRoot(t *testing.T) {
	s := Array(&Field{
		Type: TypeObject,
		Properties: map[string]*Field{
			"employees": {Type: TypeInteger, Required: true, Min: Float(0)},
		},
	})

	var body interface{}
	require.NoError(t, json.Unmarshal([]byte(`[{"employees": 10}, {"employees": -1}]`), &body))

	err := s.Validate(body)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "[1].employees", failure.Violations[0].Field)
	assert.Equal(t, CodeMin, failure.Violations[0].Code)
	assert.Equal(t, ">= 0", failure.Violations[0].Expected)
}

func TestValidate_NullBodyFails(t *testing.T) {
	s := Object(map[string]*Field{"id": {Type: TypeString}})

	err := s.Validate(nil)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, CodeType, failure.Violations[0].Code)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	s := Object(map[string]*Field{
		"id":        {Type: TypeString, Required: true},
		"employees": {Type: TypeInteger, Min: Float(0)},
		"email":     {Type: TypeString, Format: "email"},
	})

	err := s.Validate(map[string]interface{}{
		"employees": float64(-5),
		"email":     "not-an-email",
	})

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Len(t, failure.Violations, 3)
	assert.Len(t, failure.FieldViolations("employees"), 1)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	s := Object(map[string]*Field{"id": {Type: TypeString, Required: true}})

	body := map[string]interface{}{"id": "c-1", "extra": "kept"}
	require.NoError(t, s.Validate(body))

	assert.Equal(t, map[string]interface{}{"id": "c-1", "extra": "kept"}, body)
}
