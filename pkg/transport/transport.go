// Package transport defines the boundary between the validating client and
// the network. A Transport takes a RequestSpec and produces a RawResponse.
// Two implementations exist: the live HTTP transport in this package, and the
// in-process test double in pkg/mock. Callers depend only on the interface so
// the two can be swapped without code changes.
package transport

import (
	"context"
	"fmt"
)

// RequestSpec describes a single HTTP invocation. It is built per call and
// never persisted.
type RequestSpec struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string

	// Path is the request path with all path parameters already interpolated.
	Path string

	// Query holds query parameters to encode into the URL.
	Query map[string]string

	// Headers holds request headers.
	Headers map[string]string

	// Body is the raw request body, nil for body-less requests.
	Body []byte
}

// RawResponse is the transport-layer result: status, headers, and the
// unparsed body. It is consumed exactly once by the validating client.
type RawResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Transport issues a request and returns the raw response. Implementations
// must honor ctx cancellation and deadlines, surfacing them as *Error rather
// than hanging.
type Transport interface {
	Send(ctx context.Context, spec *RequestSpec) (*RawResponse, error)
}

// Error indicates the transport could not complete the round-trip: the
// network (or mock) was unreachable, the request timed out, or the context
// was cancelled. It is never retried by this library.
type Error struct {
	Method string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
