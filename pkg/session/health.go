package session

import (
	"context"
	"log/slog"

	"github.com/teslashibe/go-emocam/pkg/classify"
	"github.com/teslashibe/go-emocam/pkg/display"
	"github.com/teslashibe/go-emocam/pkg/metrics"
)

// Startup status lines and banners.
const (
	StatusReady     = "Ready to start - Model loaded"
	StatusNoModel   = "Warning: Model not loaded. Train model first."
	StatusNoBackend = "Backend server not running"
	BannerNoModel   = "Model not loaded! Please train the model first."
	BannerNoBackend = "Cannot connect to backend server. Please start the backend server first."
)

// Readiness is the outcome of the startup health check.
type Readiness int

const (
	// Ready means the backend answered with a loaded model.
	Ready Readiness = iota
	// ModelNotLoaded means the backend answered without a model.
	ModelNotLoaded
	// BackendUnavailable means the backend could not be reached or parsed.
	BackendUnavailable
)

// String returns a short name for logs.
func (r Readiness) String() string {
	switch r {
	case Ready:
		return "ready"
	case ModelNotLoaded:
		return "model_not_loaded"
	case BackendUnavailable:
		return "backend_unavailable"
	default:
		return "unknown"
	}
}

// HealthChecker is the part of classify.Classifier used at startup.
type HealthChecker interface {
	Health(ctx context.Context) (*classify.Health, error)
}

// CheckBackend runs the one-shot startup check and paints its result. It
// never prevents a later Start.
func CheckBackend(ctx context.Context, hc HealthChecker, r *display.Renderer, logger *slog.Logger) Readiness {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "session.health")

	h, err := hc.Health(ctx)
	switch {
	case err != nil:
		logger.Error("backend unreachable", "error", err)
		r.SetStatus(StatusNoBackend, false)
		r.ShowBanner(BannerNoBackend)
		metrics.SetBackendReady(false)
		return BackendUnavailable
	case !h.ModelLoaded:
		logger.Warn("backend has no model loaded", "status", h.Status)
		r.SetStatus(StatusNoModel, false)
		r.ShowBanner(BannerNoModel)
		metrics.SetBackendReady(false)
		return ModelNotLoaded
	default:
		logger.Info("backend ready", "status", h.Status)
		r.SetStatus(StatusReady, false)
		metrics.SetBackendReady(true)
		return Ready
	}
}
