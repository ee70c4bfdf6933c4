package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	RequestID  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// RejectedError reports a 2xx response whose envelope carried success=false.
type RejectedError struct {
	Method  string
	Path    string
	Message string
}

func (e *RejectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request rejected"
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
}

// DecodeError reports a response body that could not be decoded.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode response: " + e.Reason
	}
	return fmt.Sprintf("decode response: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Error kinds returned by Kind.
const (
	KindNone     = ""
	KindStatus   = "status"
	KindRejected = "rejected"
	KindDecode   = "decode"
	KindCanceled = "canceled"
	KindTimeout  = "timeout"
	KindNetwork  = "network"
)

// Kind classifies err for logging and metrics. Callers of the accessor never
// need it; all failures are handled alike there.
func Kind(err error) string {
	if err == nil {
		return KindNone
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindStatus
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return KindRejected
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return KindDecode
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindNetwork
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
