package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Provider forwards a recipe search to the external recipe API.
type Provider interface {
	SearchRecipes(ctx context.Context, query string) (*Response, error)
}

// Response is a successful provider response, kept as raw bytes so the relay
// can pass it through unmodified.
type Response struct {
	StatusCode int
	Body       []byte
}

// Error describes a failed provider call. StatusCode is zero when the call
// never produced an HTTP response.
type Error struct {
	StatusCode int
	Details    json.RawMessage
	Err        error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, string(e.Details))
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// transportError wraps a failure that happened before a status was received.
func transportError(err error) *Error {
	return &Error{Details: jsonString(err.Error()), Err: err}
}

// statusError keeps the provider's error body as the diagnostic detail. JSON
// bodies are kept as-is, anything else is carried as a JSON string.
func statusError(code int, body []byte) *Error {
	details := json.RawMessage(body)
	switch {
	case len(body) > 0 && json.Valid(body):
	case strings.TrimSpace(string(body)) != "":
		details = jsonString(string(body))
	default:
		details = jsonString(http.StatusText(code))
	}
	return &Error{
		StatusCode: code,
		Details:    details,
		Err:        fmt.Errorf("status %d", code),
	}
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
