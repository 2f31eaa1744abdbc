package mock

import (
	"encoding/json"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/apivet/apivet/internal/matching"
	"github.com/apivet/apivet/pkg/transport"
)

// Matcher defines the criteria a request must meet for a handler to claim
// it. Method and Path are mandatory; all other criteria are combined with
// AND logic.
type Matcher struct {
	// Method is the HTTP method, matched case-insensitively.
	Method string

	// Path is the path pattern: exact, {param} placeholders, or a trailing
	// /* wildcard.
	Path string

	// Query requires these query parameters with exactly these values.
	Query map[string]string

	// Headers requires these headers with exactly these values.
	Headers map[string]string

	// BodyJSONPath requires each JSONPath expression to resolve to the given
	// value in the request body. {"exists": bool} values assert presence.
	BodyJSONPath map[string]interface{}

	// When is an optional expression over the request, with "params",
	// "query", "header", and "body" in scope, e.g.
	// `query.page == "2" && body.status == "active"`.
	When string
}

func (h *handler) matches(spec *transport.RequestSpec) bool {
	m := h.matcher

	if !strings.EqualFold(m.Method, spec.Method) {
		return false
	}
	if !matching.MatchPath(m.Path, spec.Path) {
		return false
	}

	for name, want := range m.Query {
		if spec.Query[name] != want {
			return false
		}
	}
	for name, want := range m.Headers {
		if !headerEqual(spec.Headers, name, want) {
			return false
		}
	}

	if len(m.BodyJSONPath) > 0 && !matching.MatchJSONPath(m.BodyJSONPath, spec.Body) {
		return false
	}

	if h.whenProg != nil && !h.evalWhen(spec) {
		return false
	}

	return true
}

// evalWhen runs the compiled When expression. Evaluation errors and
// non-boolean results count as no match.
func (h *handler) evalWhen(spec *transport.RequestSpec) bool {
	var body interface{}
	if len(spec.Body) > 0 {
		// A non-JSON body leaves "body" nil in the expression scope.
		_ = json.Unmarshal(spec.Body, &body)
	}

	env := map[string]interface{}{
		"params": matching.PathParams(h.matcher.Path, spec.Path),
		"query":  stringMap(spec.Query),
		"header": stringMap(spec.Headers),
		"body":   body,
	}

	out, err := expr.Run(h.whenProg, env)
	if err != nil {
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

// headerEqual compares a header value ignoring name case.
func headerEqual(headers map[string]string, name, want string) bool {
	for have, value := range headers {
		if strings.EqualFold(have, name) {
			return value == want
		}
	}
	return false
}

// stringMap returns a non-nil copy so expression lookups never hit a nil map.
func stringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
