package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
)

// Transport is the HTTP collaborator consumed by resource accessors.
// Implementations report failures through the returned error; a nil error
// always comes with a non-nil *Response.
//
// Paths are in escaped form: a segment containing "/" or "%" arrives as
// %2F or %25 and must be sent to the server unchanged.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) error
}

// Response is the decoded envelope of a successful call. Data still holds the
// raw payload; use Decode to unwrap it.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`

	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// RequestID is the X-Request-ID sent with the request.
	RequestID string `json:"-"`
}

// Envelope is the typed form of the response wrapper.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Decode unwraps the payload of resp into T. ok is false when the payload is
// missing or null; value is then the zero value of T.
func Decode[T any](resp *Response) (value T, ok bool, err error) {
	if resp == nil {
		return value, false, &DecodeError{Reason: "nil response"}
	}

	raw := bytes.TrimSpace(resp.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return value, false, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, &DecodeError{Reason: "unwrap data", Err: err}
	}
	return value, true, nil
}

// NewResponse builds a successful Response holding payload. It is mainly
// useful for fakes in tests.
func NewResponse(payload any) (*Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: raw, StatusCode: 200}, nil
}
