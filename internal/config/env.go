// Package config provides environment helpers for go-emocam commands.
package config

import (
	"os"
	"strconv"
	"time"
)

// Default endpoint and device settings.
const (
	DefaultBackendURL    = "http://localhost:5000"
	DefaultCamera        = 0
	DefaultDashboardPort = "8080"
	DefaultPollInterval  = time.Second
)

// Environment variables read by the emocam commands.
const (
	EnvBackendURL   = "EMOCAM_BACKEND_URL"
	EnvCamera       = "EMOCAM_CAMERA"
	EnvPort         = "EMOCAM_PORT"
	EnvPollInterval = "EMOCAM_POLL_INTERVAL"
	EnvWebDir       = "EMOCAM_WEB_DIR"
	EnvLogLevel     = "LOG_LEVEL"
)

// BackendURL returns the classification backend origin from EMOCAM_BACKEND_URL,
// or def.
func BackendURL(def string) string {
	return String(EnvBackendURL, def)
}

// Camera returns the capture device index from EMOCAM_CAMERA, or def.
func Camera(def int) int {
	return Int(EnvCamera, def)
}

// DashboardPort returns the dashboard listen port from EMOCAM_PORT, or def.
func DashboardPort(def string) string {
	return String(EnvPort, def)
}

// PollInterval returns the tick period from EMOCAM_POLL_INTERVAL (e.g. "1s",
// "500ms"), or def.
func PollInterval(def time.Duration) time.Duration {
	return Duration(EnvPollInterval, def)
}

// WebDir returns the optional static directory from EMOCAM_WEB_DIR, or def.
func WebDir(def string) string {
	return String(EnvWebDir, def)
}

// LogLevel returns the log level from LOG_LEVEL, or def.
func LogLevel(def string) string {
	return String(EnvLogLevel, def)
}

// String returns the env var value or def when unset or empty.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int returns the env var parsed as an int, or def when unset or invalid.
func Int(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Duration returns the env var parsed as a time.Duration, or def when unset or invalid.
func Duration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
