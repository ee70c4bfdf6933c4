package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetigu/ai-playground/pkg/api"
)

func TestNew(t *testing.T) {
	err := New("S001")
	assert.Equal(t, "S001", err.Code)
	assert.Equal(t, CategoryConfig, err.Category)
	assert.Equal(t, "Failed to read configuration", err.Message)
	assert.NotEmpty(t, err.Suggestion)

	unknown := New("S999")
	assert.Equal(t, "Unknown error", unknown.Message)
}

func TestErrorString(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("S100").Wrap(cause)

	assert.Equal(t, "S100: Backend unreachable: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := Newf(CategoryCLI, "bad flag %q", "x")
	assert.Equal(t, `bad flag "x"`, plain.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "S001"))

	existing := New("S120")
	assert.Same(t, existing, FromError(existing, "S001"))

	wrapped := FromError(stderrors.New("x"), "S003")
	assert.Equal(t, "S003", wrapped.Code)
}

func TestFromAPI(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"not found", &api.StatusError{Method: "GET", Path: "/products/9", StatusCode: 404, Message: "not found"}, "S106"},
		{"unauthorized", &api.StatusError{Method: "GET", Path: "/products", StatusCode: 401}, "S107"},
		{"server error", &api.StatusError{Method: "GET", Path: "/products", StatusCode: 500}, "S101"},
		{"rejected", &api.RejectedError{Method: "POST", Path: "/orders", Message: "out of stock"}, "S102"},
		{"decode", &api.DecodeError{Reason: "unwrap data"}, "S103"},
		{"timeout", context.DeadlineExceeded, "S104"},
		{"canceled", context.Canceled, "S105"},
		{"network", stderrors.New("connection refused"), "S100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAPI(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, FromAPI(nil))
}

func TestFromAPI_StatusDetail(t *testing.T) {
	err := FromAPI(&api.StatusError{Method: "DELETE", Path: "/users/3", StatusCode: 503, Message: "maintenance", RequestID: "req-1"})

	assert.Equal(t, "DELETE /users/3 returned 503: maintenance", err.Detail)
	assert.Equal(t, "req-1", err.RequestID)
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("S101").
		WithDetail("GET /products returned 503").
		WithRequestID("abc").
		Format()

	assert.Contains(t, out, "ERROR S101: Backend returned an error status")
	assert.Contains(t, out, "GET /products returned 503")
	assert.Contains(t, out, "Request ID: abc")
	assert.Contains(t, out, "Hint: Check the backend logs")
	assert.NotContains(t, out, "\033[")
}

func TestFormatJSON(t *testing.T) {
	raw := New("S106").WithRequestID("r").Wrap(stderrors.New("gone")).FormatJSON()

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "S106", decoded["code"])
	assert.Equal(t, "transport", decoded["category"])
	assert.Equal(t, "gone", decoded["cause"])
	assert.Equal(t, "r", decoded["requestId"])
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	PrintError(&b, New("S140"))
	assert.Contains(t, b.String(), "S140")

	b.Reset()
	PrintError(&b, stderrors.New("plain"))
	assert.Contains(t, b.String(), "ERROR: plain")
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	require.NotEmpty(t, codes)
	assert.True(t, strings.HasPrefix(codes[0], "S"))
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		assert.True(t, ok)
		assert.NotEmpty(t, tmpl.Message, code)
	}

	Register("S900", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	defer delete(registry, "S900")
	assert.Equal(t, "custom", New("S900").Message)
}
