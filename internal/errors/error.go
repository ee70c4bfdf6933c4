package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryTransport  Category = "transport"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// StorefrontError is a structured error with a code, an explanation and a hint.
type StorefrontError struct {
	// Code is a unique error identifier (e.g., "S001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// RequestID correlates transport errors with backend logs.
	RequestID string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StorefrontError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StorefrontError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StorefrontError) WithSuggestion(s string) *StorefrontError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *StorefrontError) WithDetail(d string) *StorefrontError {
	e.Detail = d
	return e
}

// WithRequestID records the request ID of a failed call.
func (e *StorefrontError) WithRequestID(id string) *StorefrontError {
	e.RequestID = id
	return e
}

// Wrap wraps another error.
func (e *StorefrontError) Wrap(err error) *StorefrontError {
	e.Wrapped = err
	return e
}

// New creates a StorefrontError from a registered error code.
func New(code string) *StorefrontError {
	template, ok := registry[code]
	if !ok {
		return &StorefrontError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StorefrontError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new StorefrontError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StorefrontError {
	return &StorefrontError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a StorefrontError.
func FromError(err error, code string) *StorefrontError {
	if err == nil {
		return nil
	}
	var se *StorefrontError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}
