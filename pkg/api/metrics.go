package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the transport metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "storefront").
	Namespace string

	// Subsystem is the metrics subsystem (default: "api").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the transport metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "storefront",
		Subsystem: "api",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for outgoing requests.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// NewMetrics creates and registers the transport collectors. Registering the
// same collectors twice on one registry reuses the existing ones, so several
// clients can share a registry.
//
// Metrics collected:
//   - storefront_api_requests_total: requests by method and status
//   - storefront_api_request_duration_seconds: request latency by method
//   - storefront_api_request_errors_total: failures by method and kind
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of API requests",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "API request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method"}),

		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_errors_total",
			Help:        "Total number of failed API requests by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "kind"}),
	}

	if config.Registry != nil {
		m.requestsTotal = register(config.Registry, m.requestsTotal)
		m.requestDuration = register(config.Registry, m.requestDuration)
		m.requestErrors = register(config.Registry, m.requestErrors)
	}
	return m
}

// register registers c, falling back to an already registered equivalent.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// observe records one finished request. status is 0 when no response arrived.
func (m *Metrics) observe(method string, status int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	statusLabel := "none"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, statusLabel).Inc()
	m.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if err != nil {
		m.requestErrors.WithLabelValues(method, Kind(err)).Inc()
	}
}
