// Package emocam wires the camera, classifier, display and dashboard into
// the emotion detection application.
package emocam

import (
	"net/url"
	"time"

	"github.com/teslashibe/go-emocam/internal/config"
	"github.com/teslashibe/go-emocam/internal/httpc"
)

// Config holds all configuration for the application.
// Flag parsing is done in cmd/emocam/main.go; this struct is data only.
type Config struct {
	// Debug forces debug logging regardless of LogLevel.
	Debug    bool
	LogLevel string

	// BackendURL is the base URL of the classification backend.
	BackendURL     string
	RequestTimeout time.Duration

	// Camera is the capture device index. ImagePath, when set, replaces the
	// device with a still image.
	Camera    int
	ImagePath string

	PollInterval time.Duration

	// Dashboard.
	Port   string
	WebDir string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		BackendURL:     config.DefaultBackendURL,
		RequestTimeout: httpc.DefaultTimeout,
		Camera:         config.DefaultCamera,
		PollInterval:   config.DefaultPollInterval,
		Port:           config.DefaultDashboardPort,
	}
}

// LoadEnvConfig applies environment overrides. Call it before flag parsing
// so flags win.
func (c *Config) LoadEnvConfig() {
	c.BackendURL = config.BackendURL(c.BackendURL)
	c.Camera = config.Camera(c.Camera)
	c.Port = config.DashboardPort(c.Port)
	c.PollInterval = config.PollInterval(c.PollInterval)
	c.WebDir = config.WebDir(c.WebDir)
	c.LogLevel = config.LogLevel(c.LogLevel)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.BackendURL); err != nil {
		return &ConfigError{Field: "BackendURL", Message: "backend URL is not a valid absolute URL: " + c.BackendURL}
	}
	if c.PollInterval <= 0 {
		return &ConfigError{Field: "PollInterval", Message: "poll interval must be positive"}
	}
	if c.RequestTimeout < 0 {
		return &ConfigError{Field: "RequestTimeout", Message: "request timeout must not be negative"}
	}
	if c.Camera < 0 && c.ImagePath == "" {
		return &ConfigError{Field: "Camera", Message: "camera index must not be negative"}
	}
	if c.Port == "" {
		return &ConfigError{Field: "Port", Message: "dashboard port is required"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
