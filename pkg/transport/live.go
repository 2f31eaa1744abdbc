package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is applied when LiveConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Live is the production Transport. It issues real HTTP requests against a
// base URL using a shared http.Client.
type Live struct {
	baseURL    string
	httpClient *http.Client
}

// LiveConfig holds configuration for the live transport.
type LiveConfig struct {
	// BaseURL is prepended to every request path, e.g. "https://partner.example.com".
	BaseURL string

	// Timeout bounds the whole round-trip. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Client overrides the underlying http.Client. When set, Timeout is ignored.
	Client *http.Client
}

// NewLive creates a live transport for the given base URL.
func NewLive(cfg LiveConfig) *Live {
	httpClient := cfg.Client
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Live{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// Send performs one HTTP round-trip. Any failure to reach the remote side,
// including context cancellation and timeouts, is returned as *Error.
// Non-2xx statuses are not errors at this layer; the caller decides what a
// given status means.
func (l *Live) Send(ctx context.Context, spec *RequestSpec) (*RawResponse, error) {
	target := l.baseURL + spec.Path
	if len(spec.Query) > 0 {
		values := url.Values{}
		for name, value := range spec.Query {
			values.Set(name, value)
		}
		target += "?" + values.Encode()
	}

	var body io.Reader
	if spec.Body != nil {
		body = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, target, body)
	if err != nil {
		return nil, &Error{Method: spec.Method, Path: spec.Path, Err: err}
	}
	for name, value := range spec.Headers {
		req.Header.Set(name, value)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Method: spec.Method, Path: spec.Path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: spec.Method, Path: spec.Path, Err: err}
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[name] = resp.Header.Get(name)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       respBody,
	}, nil
}
