package httpclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/forgeci/corekit/resilience"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths. Leave
	// empty to pass full URLs per request.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// DefaultRetryConfig returns a retry config suitable for HTTP clients:
// connection failures, timeouts and 5xx responses are retried.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// IsRetryable reports whether an HTTP client error is worth retrying.
func IsRetryable(err error) bool {
	var httpErr *Error
	if !errors.As(err, &httpErr) {
		return resilience.DefaultRetryIf(err)
	}
	switch httpErr.Code {
	case ErrCodeConnection, ErrCodeTimeout:
		return true
	case ErrCodeStatus:
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == 429
	default:
		return false
	}
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}
