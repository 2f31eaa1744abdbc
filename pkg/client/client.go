// Package client implements the validating client: the single entry point
// that composes the transport layer with the operation catalog and schema
// registry. One Call performs exactly one transport round-trip and nothing
// is retried here; retry policy belongs to the integration project around
// this library.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/apivet/apivet/pkg/logging"
	"github.com/apivet/apivet/pkg/operation"
	"github.com/apivet/apivet/pkg/schema"
	"github.com/apivet/apivet/pkg/transport"
)

// UnknownOperationError reports a call to an operation that was never
// registered. This is a programming error in the caller, not a partner
// failure.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// MalformedBodyError reports a response body that could not be parsed as
// JSON. Legacy partners occasionally return HTML error pages with a 200
// status; this is how those surface.
type MalformedBodyError struct {
	Operation string
	Err       error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("operation %s: response body is not valid JSON: %v", e.Operation, e.Err)
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}

// Result is a schema-conformant response.
type Result struct {
	// Operation is the logical operation that produced this result.
	Operation string

	// StatusCode is the transport-level status of the response.
	StatusCode int

	// Headers are the response headers.
	Headers map[string]string

	// Value is the parsed response body. Fields the schema does not declare
	// pass through unmodified.
	Value interface{}
}

// Client issues operations over a Transport and validates every response
// against the operation's schema before handing it to the caller. Stateless
// per call and safe for concurrent use: the registries are read-only after
// setup and the transport owns its own synchronization.
type Client struct {
	transport  transport.Transport
	operations *operation.Registry
	schemas    *schema.Registry
	log        *slog.Logger
}

// New creates a validating client over the given transport and registries.
// Swapping a live transport for a mock one is the only difference between
// production and test wiring.
func New(t transport.Transport, ops *operation.Registry, schemas *schema.Registry) *Client {
	return &Client{
		transport:  t,
		operations: ops,
		schemas:    schemas,
		log:        logging.Nop(),
	}
}

// SetLogger sets the operational logger for the client.
func (c *Client) SetLogger(log *slog.Logger) {
	if log != nil {
		c.log = log
	} else {
		c.log = logging.Nop()
	}
}

// Call invokes a registered operation with the given parameters and returns
// the validated result.
//
// Failure modes, in order: *UnknownOperationError (no such operation),
// *operation.ParamError (missing required parameter), *transport.Error
// (round-trip failed), *MalformedBodyError (body not JSON), and
// *schema.Failure (body violates the operation's schema). Each is a distinct
// type; callers pick them apart with errors.As.
func (c *Client) Call(ctx context.Context, name string, params map[string]string) (*Result, error) {
	return c.CallWithBody(ctx, name, params, nil)
}

// CallWithBody is Call with a request body, for POST/PUT operations.
func (c *Client) CallWithBody(ctx context.Context, name string, params map[string]string, body []byte) (*Result, error) {
	op, ok := c.operations.Lookup(name)
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}
	// Registration invariant: every exposed operation has exactly one schema.
	sch, ok := c.schemas.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("operation %q has no registered schema", name)
	}

	spec, err := op.BuildRequest(params, body)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	c.log.Debug("sending request",
		"operation", name, "method", spec.Method, "path", spec.Path, "requestId", requestID)

	resp, err := c.transport.Send(ctx, spec)
	if err != nil {
		c.log.Warn("transport failed",
			"operation", name, "requestId", requestID, "error", err)
		return nil, err
	}

	var parsed interface{}
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, &MalformedBodyError{Operation: name, Err: err}
	}

	if err := sch.Validate(parsed); err != nil {
		if failure, ok := err.(*schema.Failure); ok {
			failure.Operation = name
			c.log.Warn("response failed validation",
				"operation", name, "requestId", requestID, "violations", len(failure.Violations))
			return nil, failure
		}
		return nil, err
	}

	c.log.Debug("call complete",
		"operation", name, "requestId", requestID, "status", resp.StatusCode)

	return &Result{
		Operation:  name,
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Value:      parsed,
	}, nil
}
