package classify

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/teslashibe/go-emocam/internal/config"
	"github.com/teslashibe/go-emocam/internal/httpc"
)

// Config holds client configuration.
type Config struct {
	BaseURL    string        // Backend origin
	Timeout    time.Duration // Per-request timeout
	HTTPClient *http.Client  // Overrides the default client when set
	Logger     *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the backend origin, e.g. "http://localhost:5000".
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig points at the local backend.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: config.DefaultBackendURL,
		Timeout: httpc.DefaultTimeout,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
