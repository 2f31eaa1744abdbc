package mock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/apivet/apivet/internal/matching"
	"github.com/apivet/apivet/pkg/transport"
)

// ErrClosed is returned (wrapped in *transport.Error) when Send is called
// after Close.
var ErrClosed = errors.New("mock transport is closed")

// Request is the view of an incoming request handed to a Responder.
type Request struct {
	Method string
	Path   string

	// PathParams holds values captured by {param} placeholders in the
	// matched pattern.
	PathParams map[string]string

	Query   map[string]string
	Headers map[string]string
	Body    []byte
}

// Responder synthesizes the canned response for a matched request.
type Responder func(req *Request) *transport.RawResponse

// UnhandledRequestError reports a request no registered handler claimed.
// It always fails the test: the mock never falls through to a live network.
type UnhandledRequestError struct {
	Method string
	Path   string
}

func (e *UnhandledRequestError) Error() string {
	return fmt.Sprintf("no handler registered for %s %s", e.Method, e.Path)
}

type handler struct {
	matcher   Matcher
	whenProg  *vm.Program
	responder Responder
}

// Transport is the in-process Transport implementation used in tests.
// Register and Reset are not safe to call concurrently with an in-flight
// Send; isolate the handler set per test.
type Transport struct {
	mu       sync.Mutex
	handlers []*handler
	closed   bool
}

// Listen acquires a fresh mock transport. Pair every Listen with a Close,
// typically via defer, so no interception state outlives the suite.
func Listen() *Transport {
	return &Transport{}
}

// Register adds a handler for a method and path pattern. Registering the
// same (method, pattern) pair again replaces the earlier handler in place;
// otherwise handlers match in registration order, first match wins.
func (t *Transport) Register(method, pathPattern string, responder Responder) {
	// Method+pattern registrations cannot fail; discard the impossible error.
	_ = t.RegisterMatcher(Matcher{Method: method, Path: pathPattern}, responder)
}

// RegisterMatcher adds a handler with full matching criteria. JSONPath and
// When conditions are validated here so a typo fails the test setup rather
// than silently never matching. Replacement follows the same
// (method, path pattern) rule as Register.
func (t *Transport) RegisterMatcher(m Matcher, responder Responder) error {
	if m.Method == "" || m.Path == "" {
		return fmt.Errorf("mock handler requires a method and a path pattern")
	}
	if responder == nil {
		return fmt.Errorf("mock handler for %s %s requires a responder", m.Method, m.Path)
	}
	for path := range m.BodyJSONPath {
		if err := matching.ValidateJSONPath(path); err != nil {
			return err
		}
	}

	h := &handler{matcher: m, responder: responder}
	if m.When != "" {
		prog, err := expr.Compile(m.When, expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("invalid when expression %q: %w", m.When, err)
		}
		h.whenProg = prog
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, existing := range t.handlers {
		if strings.EqualFold(existing.matcher.Method, m.Method) && existing.matcher.Path == m.Path {
			t.handlers[i] = h
			return nil
		}
	}
	t.handlers = append(t.handlers, h)
	return nil
}

// Send matches the request against registered handlers. The first handler
// whose criteria all hold produces the response. With no match, Send fails
// with *UnhandledRequestError naming the method and path.
func (t *Transport) Send(ctx context.Context, spec *transport.RequestSpec) (*transport.RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &transport.Error{Method: spec.Method, Path: spec.Path, Err: err}
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, &transport.Error{Method: spec.Method, Path: spec.Path, Err: ErrClosed}
	}
	handlers := t.handlers
	t.mu.Unlock()

	for _, h := range handlers {
		if !h.matches(spec) {
			continue
		}
		req := &Request{
			Method:     spec.Method,
			Path:       spec.Path,
			PathParams: matching.PathParams(h.matcher.Path, spec.Path),
			Query:      spec.Query,
			Headers:    spec.Headers,
			Body:       spec.Body,
		}
		return h.responder(req), nil
	}

	return nil, &UnhandledRequestError{Method: spec.Method, Path: spec.Path}
}

// Reset clears all handlers registered since the last Reset. Call it between
// independent test cases so canned responses never leak across tests.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = nil
}

// Close releases the transport. Further Sends fail with a transport error.
// Call once per suite, after which the transport cannot be reused.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.handlers = nil
}
