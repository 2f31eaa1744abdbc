package mock

import (
	"encoding/json"
	"fmt"

	"github.com/apivet/apivet/pkg/transport"
)

// JSON returns a responder producing a JSON response with the given status.
// v is marshaled once at registration; a value that cannot marshal yields a
// 500 response carrying the marshal error, which will then fail the calling
// test at the parse or status step.
func JSON(status int, v interface{}) Responder {
	body, err := json.Marshal(v)
	if err != nil {
		msg := []byte(fmt.Sprintf("mock: unmarshalable canned response: %v", err))
		return func(*Request) *transport.RawResponse {
			return &transport.RawResponse{StatusCode: 500, Body: msg}
		}
	}
	return func(*Request) *transport.RawResponse {
		return &transport.RawResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       body,
		}
	}
}

// Bytes returns a responder producing a fixed raw response.
func Bytes(status int, contentType string, body []byte) Responder {
	return func(*Request) *transport.RawResponse {
		return &transport.RawResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": contentType},
			Body:       body,
		}
	}
}

// Status returns a responder producing an empty response with the given
// status code.
func Status(status int) Responder {
	return func(*Request) *transport.RawResponse {
		return &transport.RawResponse{StatusCode: status}
	}
}
