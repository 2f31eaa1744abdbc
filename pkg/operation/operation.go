// Package operation defines the logical API calls a partner integration
// exposes. An Operation pairs a name with an HTTP method and a path template;
// the validating client looks operations up by name and never deals in raw
// URLs.
package operation

import (
	"fmt"
	"strings"

	"github.com/apivet/apivet/pkg/transport"
)

// Operation identifies one logical API call. Immutable once registered.
type Operation struct {
	// Name is the logical operation name, e.g. "listCompanies".
	Name string `json:"name" yaml:"name"`

	// Method is the HTTP method.
	Method string `json:"method" yaml:"method"`

	// PathTemplate is the request path with {param} placeholders,
	// e.g. "/companies/{id}".
	PathTemplate string `json:"path" yaml:"path"`

	// Required lists parameter names that must be supplied on every call.
	// Path placeholders are always required regardless of this list.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Headers are fixed headers sent with every invocation of this
	// operation, e.g. a legacy partner's mandatory X-Api-Version.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// ParamError reports a call that is missing a parameter the operation
// requires. It is raised before any transport round-trip.
type ParamError struct {
	Operation string
	Param     string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("operation %s: missing required parameter %q", e.Operation, e.Param)
}

// BuildRequest constructs the RequestSpec for one invocation. Parameters
// named in the path template are interpolated into the path; the rest become
// query parameters. body may be nil.
func (o *Operation) BuildRequest(params map[string]string, body []byte) (*transport.RequestSpec, error) {
	for _, name := range o.Required {
		if _, ok := params[name]; !ok {
			return nil, &ParamError{Operation: o.Name, Param: name}
		}
	}

	path := o.PathTemplate
	used := make(map[string]bool)
	for _, placeholder := range pathPlaceholders(o.PathTemplate) {
		value, ok := params[placeholder]
		if !ok {
			return nil, &ParamError{Operation: o.Name, Param: placeholder}
		}
		path = strings.ReplaceAll(path, "{"+placeholder+"}", value)
		used[placeholder] = true
	}

	var query map[string]string
	for name, value := range params {
		if used[name] {
			continue
		}
		if query == nil {
			query = make(map[string]string)
		}
		query[name] = value
	}

	var headers map[string]string
	if len(o.Headers) > 0 {
		headers = make(map[string]string, len(o.Headers))
		for name, value := range o.Headers {
			headers[name] = value
		}
	}

	return &transport.RequestSpec{
		Method:  o.Method,
		Path:    path,
		Query:   query,
		Headers: headers,
		Body:    body,
	}, nil
}

// pathPlaceholders extracts placeholder names from a path template.
// "/companies/{id}/sites/{site}" yields ["id", "site"].
func pathPlaceholders(template string) []string {
	var names []string
	for _, segment := range strings.Split(template, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			names = append(names, segment[1:len(segment)-1])
		}
	}
	return names
}
