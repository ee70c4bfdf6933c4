package api

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL points at a locally running backend.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "storefront-go"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 8 << 20
)

// Config configures Client. The struct tags are read by cleanenv.
type Config struct {
	BaseURL   string        `yaml:"base_url" env:"STOREFRONT_API_URL" env-default:"http://localhost:8000/api/v1" env-description:"Backend API base URL"`
	Token     string        `yaml:"token" env:"STOREFRONT_API_TOKEN" env-description:"Bearer token sent with every request"`
	Timeout   time.Duration `yaml:"timeout" env:"STOREFRONT_TIMEOUT" env-default:"30s" env-description:"Per-request timeout"`
	RateLimit float64       `yaml:"rate_limit" env:"STOREFRONT_RATE_LIMIT" env-default:"0" env-description:"Requests per second, 0 disables limiting"`
	RateBurst int           `yaml:"rate_burst" env:"STOREFRONT_RATE_BURST" env-default:"1" env-description:"Rate limiter burst size"`
	UserAgent string        `yaml:"user_agent" env:"STOREFRONT_USER_AGENT" env-default:"storefront-go" env-description:"User-Agent header"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		RateBurst: 1,
		UserAgent: DefaultUserAgent,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when rate_limit is set")
	}
	return nil
}
