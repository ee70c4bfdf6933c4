package resource

import "log/slog"

type options struct {
	logger    *slog.Logger
	onSuccess func(any)
	onError   func(error)
}

// Option configures an Accessor.
type Option func(*options)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOnSuccess registers a callback run after each successful data write.
// It receives the payload stored in the data cell. Remove does not trigger it.
func WithOnSuccess(fn func(any)) Option {
	return func(o *options) {
		o.onSuccess = fn
	}
}

// WithOnError registers a callback run after each failure is recorded.
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
