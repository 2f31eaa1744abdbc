// Package matching implements the request matching used by the mock
// transport: path patterns with named parameters and wildcards, and JSONPath
// conditions over request bodies.
package matching

import (
	"strings"
)

// MatchPath reports whether a request path matches a handler pattern.
// Supported patterns:
//   - exact: "/companies" matches "/companies"
//   - named params: "/companies/{id}" matches "/companies/42"
//   - trailing wildcard: "/companies/*" matches "/companies/42/sites"
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	if strings.Contains(pattern, "{") {
		return matchNamedParams(pattern, path)
	}

	return false
}

func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, part := range patternParts {
		if isPlaceholder(part) {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}

// PathParams extracts named parameter values from a matching path.
// PathParams("/companies/{id}", "/companies/42") returns {"id": "42"}.
// The result is empty when the pattern has no placeholders.
func PathParams(pattern, path string) map[string]string {
	params := make(map[string]string)

	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	for i, part := range patternParts {
		if i >= len(pathParts) {
			break
		}
		if isPlaceholder(part) {
			params[part[1:len(part)-1]] = pathParts[i]
		}
	}
	return params
}

func isPlaceholder(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
