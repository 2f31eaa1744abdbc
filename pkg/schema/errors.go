package schema

import (
	"fmt"
	"strings"
)

// Violation codes, machine-readable.
const (
	CodeRequired = "required"
	CodeType     = "type"
	CodeMin      = "min"
	CodeMax      = "max"
	CodeMinLen   = "min_length"
	CodeMaxLen   = "max_length"
	CodePattern  = "pattern"
	CodeFormat   = "format"
	CodeMinItems = "min_items"
	CodeMaxItems = "max_items"
	CodeEnum     = "enum"
	CodeSchema   = "schema"
)

// Violation records one declared constraint the response body failed to meet.
type Violation struct {
	// Field is the path of the offending field, e.g. "address.zip" or
	// "[1].employees" for an array-rooted response.
	Field string `json:"field"`

	// Code is the machine-readable violation code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Expected describes the violated constraint, e.g. ">= 0" or "string".
	Expected string `json:"expected,omitempty"`

	// Actual is the offending value as received.
	Actual interface{} `json:"actual,omitempty"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Failure is the typed error returned when a response body does not conform
// to its operation's schema. It carries every violation found, not just the
// first, so callers can report them all at once.
type Failure struct {
	// Operation is the logical operation whose schema was violated, when known.
	Operation string `json:"operation,omitempty"`

	// Violations lists each failed constraint with its field path.
	Violations []Violation `json:"violations"`
}

func (f *Failure) Error() string {
	parts := make([]string, len(f.Violations))
	for i, v := range f.Violations {
		parts[i] = v.String()
	}
	subject := "response"
	if f.Operation != "" {
		subject = fmt.Sprintf("%s response", f.Operation)
	}
	return fmt.Sprintf("%s failed schema validation: %s", subject, strings.Join(parts, "; "))
}

// FieldViolations returns the violations recorded for the given field path.
func (f *Failure) FieldViolations(field string) []Violation {
	var out []Violation
	for _, v := range f.Violations {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}
