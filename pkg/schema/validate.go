package schema

import (
	"fmt"
	"regexp"
)

// Validate checks parsed (a decoded JSON value: map[string]interface{},
// []interface{}, string, float64, bool, or nil) against the schema. It
// returns nil when every declared constraint holds, or a *Failure listing
// each violation. The input is never mutated; fields the schema does not
// declare are ignored.
func (s *Schema) Validate(parsed interface{}) error {
	var violations []Violation

	switch {
	case s.compiled != nil:
		violations = s.compiled.validate(parsed)
	case s.Type == TypeArray:
		violations = validateRoot("", parsed, &Field{Type: TypeArray, Items: s.Items})
	default:
		violations = validateRoot("", parsed, &Field{Type: TypeObject, Properties: s.Fields})
	}

	if len(violations) == 0 {
		return nil
	}
	return &Failure{Violations: violations}
}

// validateRoot dispatches validation for the schema root. The root itself is
// required: a null body never conforms.
func validateRoot(path string, value interface{}, field *Field) []Violation {
	if value == nil {
		return []Violation{{
			Field:    path,
			Code:     CodeType,
			Message:  fmt.Sprintf("expected %s, got null", field.Type),
			Expected: field.Type,
		}}
	}
	return validateField(path, value, field)
}

// validateField checks one value against one field declaration and recurses
// into declared array items and object properties.
func validateField(path string, value interface{}, field *Field) []Violation {
	if field == nil {
		return nil
	}

	if value == nil {
		if field.Nullable || field.Type == "" {
			return nil
		}
		return []Violation{{
			Field:    path,
			Code:     CodeType,
			Message:  fmt.Sprintf("expected %s, got null", field.Type),
			Expected: field.Type,
		}}
	}

	if field.Type != "" {
		if v := checkType(path, value, field.Type); v != nil {
			// Constraints below assume the declared type; stop here.
			return []Violation{*v}
		}
	}

	var violations []Violation
	switch v := value.(type) {
	case string:
		violations = append(violations, checkString(path, v, field)...)
	case float64:
		violations = append(violations, checkNumber(path, v, field)...)
	case []interface{}:
		violations = append(violations, checkArray(path, v, field)...)
	case map[string]interface{}:
		violations = append(violations, checkObject(path, v, field)...)
	}

	if len(field.Enum) > 0 && !enumContains(field.Enum, value) {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeEnum,
			Message:  fmt.Sprintf("value %v is not one of the allowed values", value),
			Expected: fmt.Sprintf("one of %v", field.Enum),
			Actual:   value,
		})
	}

	return violations
}

func checkType(path string, value interface{}, expected string) *Violation {
	actual := jsonType(value)

	ok := actual == expected
	if expected == TypeInteger {
		// Integers arrive as float64 from the JSON decoder; accept only
		// whole numbers.
		n, isNum := value.(float64)
		ok = isNum && n == float64(int64(n))
	}

	if ok {
		return nil
	}
	return &Violation{
		Field:    path,
		Code:     CodeType,
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
		Expected: expected,
		Actual:   value,
	}
}

func jsonType(value interface{}) string {
	switch value.(type) {
	case string:
		return TypeString
	case float64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case []interface{}:
		return TypeArray
	case map[string]interface{}:
		return TypeObject
	default:
		return fmt.Sprintf("%T", value)
	}
}

func checkString(path, value string, field *Field) []Violation {
	var violations []Violation

	if field.MinLength != nil && len(value) < *field.MinLength {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMinLen,
			Message:  fmt.Sprintf("length %d is below minimum %d", len(value), *field.MinLength),
			Expected: fmt.Sprintf("length >= %d", *field.MinLength),
			Actual:   value,
		})
	}
	if field.MaxLength != nil && len(value) > *field.MaxLength {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMaxLen,
			Message:  fmt.Sprintf("length %d exceeds maximum %d", len(value), *field.MaxLength),
			Expected: fmt.Sprintf("length <= %d", *field.MaxLength),
			Actual:   value,
		})
	}
	if field.Pattern != "" {
		matched, err := regexp.MatchString(field.Pattern, value)
		if err != nil || !matched {
			violations = append(violations, Violation{
				Field:    path,
				Code:     CodePattern,
				Message:  fmt.Sprintf("value does not match pattern %q", field.Pattern),
				Expected: field.Pattern,
				Actual:   value,
			})
		}
	}
	if field.Format != "" && !MatchFormat(field.Format, value) {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeFormat,
			Message:  fmt.Sprintf("value is not a valid %s", field.Format),
			Expected: field.Format,
			Actual:   value,
		})
	}

	return violations
}

func checkNumber(path string, value float64, field *Field) []Violation {
	var violations []Violation

	if field.Min != nil && value < *field.Min {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMin,
			Message:  fmt.Sprintf("value %v is below minimum %v", value, *field.Min),
			Expected: fmt.Sprintf(">= %v", *field.Min),
			Actual:   value,
		})
	}
	if field.Max != nil && value > *field.Max {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMax,
			Message:  fmt.Sprintf("value %v exceeds maximum %v", value, *field.Max),
			Expected: fmt.Sprintf("<= %v", *field.Max),
			Actual:   value,
		})
	}

	return violations
}

func checkArray(path string, value []interface{}, field *Field) []Violation {
	var violations []Violation

	if field.MinItems != nil && len(value) < *field.MinItems {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMinItems,
			Message:  fmt.Sprintf("%d items is below minimum %d", len(value), *field.MinItems),
			Expected: fmt.Sprintf(">= %d items", *field.MinItems),
		})
	}
	if field.MaxItems != nil && len(value) > *field.MaxItems {
		violations = append(violations, Violation{
			Field:    path,
			Code:     CodeMaxItems,
			Message:  fmt.Sprintf("%d items exceeds maximum %d", len(value), *field.MaxItems),
			Expected: fmt.Sprintf("<= %d items", *field.MaxItems),
		})
	}

	if field.Items != nil {
		for i, item := range value {
			violations = append(violations, validateField(fmt.Sprintf("%s[%d]", path, i), item, field.Items)...)
		}
	}

	return violations
}

func checkObject(path string, value map[string]interface{}, field *Field) []Violation {
	var violations []Violation

	for name, propField := range field.Properties {
		propPath := name
		if path != "" {
			propPath = path + "." + name
		}

		propValue, present := value[name]
		if !present {
			if propField != nil && propField.Required {
				violations = append(violations, Violation{
					Field:    propPath,
					Code:     CodeRequired,
					Message:  "required field is missing",
					Expected: "present",
				})
			}
			continue
		}

		violations = append(violations, validateField(propPath, propValue, propField)...)
	}

	return violations
}

func enumContains(enum []interface{}, value interface{}) bool {
	for _, allowed := range enum {
		if valuesEqual(value, allowed) {
			return true
		}
	}
	return false
}

// valuesEqual compares scalar values, coercing numeric types so that an enum
// declared with int literals matches decoded float64 values.
func valuesEqual(a, b interface{}) bool {
	if a == b {
		return true
	}
	an, aok := toFloat64(a)
	bn, bok := toFloat64(b)
	return aok && bok && an == bn
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
