package matching

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

// MatchJSONPath evaluates JSONPath conditions against a JSON body. Every
// condition must hold; a body that is not valid JSON matches nothing.
// A condition value of the form {"exists": bool} asserts presence or absence
// instead of equality.
func MatchJSONPath(conditions map[string]interface{}, body []byte) bool {
	if len(conditions) == 0 {
		return true
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return false
	}

	for path, expected := range conditions {
		if !matchOne(path, expected, data) {
			return false
		}
	}
	return true
}

func matchOne(path string, expected interface{}, data interface{}) bool {
	expr, err := jp.ParseString(path)
	if err != nil {
		return false
	}

	results := expr.Get(data)

	if wantExists, ok := existsCondition(expected); ok {
		return wantExists == (len(results) > 0)
	}

	for _, result := range results {
		if valuesEqual(result, expected) {
			return true
		}
	}
	return false
}

func existsCondition(expected interface{}) (want bool, ok bool) {
	m, isMap := expected.(map[string]interface{})
	if !isMap || len(m) != 1 {
		return false, false
	}
	v, has := m["exists"]
	if !has {
		return false, false
	}
	b, isBool := v.(bool)
	return b, isBool
}

// valuesEqual compares decoded JSON values, coercing numeric types.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	an, aok := toFloat64(actual)
	en, eok := toFloat64(expected)
	return aok && eok && an == en
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
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ValidateJSONPath checks a JSONPath expression at registration time so a
// typo fails the test setup instead of silently never matching.
func ValidateJSONPath(path string) error {
	if _, err := jp.ParseString(path); err != nil {
		return fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
	}
	return nil
}
