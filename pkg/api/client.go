package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// defaultTracerName is the instrumentation name of client spans.
const defaultTracerName = "github.com/wetigu/ai-playground/pkg/api"

// Client is the net/http implementation of Transport.
type Client struct {
	baseURL    *url.URL
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
	tracer     trace.Tracer
	logger     *slog.Logger
}

var _ Transport = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Config.Timeout is not
// applied to a client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracerProvider creates client spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(defaultTracerName)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid api config: %w", err)
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL:    base,
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     otel.Tracer(defaultTracerName),
		logger:     slog.Default().With("component", "api"),
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET with the given query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE. The response payload is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// resolve joins the escaped path onto the base URL. Path keeps the decoded
// form and RawPath the escaped one so escaped segments are sent unchanged.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	u := *c.baseURL
	escaped := strings.TrimSuffix(u.EscapedPath(), "/") + "/" + strings.TrimPrefix(path, "/")
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	u.Path = decoded
	u.RawPath = escaped
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (resp *Response, err error) {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "HTTP "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("storefront.request_id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		c.metrics.observe(method, status, time.Since(start), err)
		if status > 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		c.logger.Debug("api request",
			"method", method,
			"path", path,
			"status", status,
			"request_id", requestID,
			"duration", time.Since(start),
			"error", err,
		)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: rate limit: %w", method, path, err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: marshal request body: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	target, err := c.resolve(path, query)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: create request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()
	status = httpResp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response body: %w", method, path, err)
	}

	if status < 200 || status > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: status,
			Message:    errorMessage(raw),
			RequestID:  requestID,
		}
	}

	resp, err = parseEnvelope(raw)
	if err != nil {
		return nil, err
	}
	resp.StatusCode = status
	resp.RequestID = requestID

	if !resp.Success {
		return nil, &RejectedError{Method: method, Path: path, Message: resp.Message}
	}
	return resp, nil
}

// parseEnvelope decodes body as an envelope. Empty bodies (204) count as a
// successful envelope without data; JSON bodies without a boolean "success"
// field are treated as a bare payload.
func parseEnvelope(body []byte) (*Response, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Response{Success: true}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Reason: "response body is not valid JSON"}
	}

	success := gjson.GetBytes(body, "success")
	if success.Type != gjson.True && success.Type != gjson.False {
		return &Response{Success: true, Data: json.RawMessage(body)}, nil
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Reason: "envelope", Err: err}
	}
	return &resp, nil
}

// errorMessage extracts a human readable message from an error body. It
// understands the envelope "message" field, FastAPI "detail" strings and
// validation lists, and falls back to the trimmed text.
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String && msg.String() != "" {
			return msg.String()
		}
		detail := gjson.GetBytes(body, "detail")
		switch {
		case detail.Type == gjson.String:
			return detail.String()
		case detail.IsArray():
			var parts []string
			detail.ForEach(func(_, item gjson.Result) bool {
				if msg := item.Get("msg"); msg.Exists() {
					parts = append(parts, msg.String())
				}
				return true
			})
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}

	const maxLen = 512
	msg := string(body)
	if len(msg) > maxLen {
		msg = msg[:maxLen] + "...(truncated)"
	}
	return msg
}
