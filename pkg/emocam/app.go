package emocam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teslashibe/go-emocam/internal/log"
	"github.com/teslashibe/go-emocam/pkg/capture"
	"github.com/teslashibe/go-emocam/pkg/classify"
	"github.com/teslashibe/go-emocam/pkg/display"
	"github.com/teslashibe/go-emocam/pkg/metrics"
	"github.com/teslashibe/go-emocam/pkg/session"
	"github.com/teslashibe/go-emocam/pkg/web"
)

// App is the main application orchestrator.
// It manages all components and their lifecycle.
type App struct {
	config Config
	logger *slog.Logger

	classifier *classify.Client
	camera     capture.Camera
	renderer   *display.Renderer
	controller *session.Controller

	registry  *prometheus.Registry
	webServer *web.Server

	// Cancels in-flight classification requests at shutdown.
	cancelRequests context.CancelFunc
}

// New creates an application with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	return &App{
		config: cfg,
		logger: log.Component("emocam"),
	}, nil
}

// Init builds every component.
// Call this after New() and before Run().
func (a *App) Init() error {
	var err error

	a.classifier, err = classify.NewClient(
		classify.WithBaseURL(a.config.BackendURL),
		classify.WithTimeout(a.config.RequestTimeout),
		classify.WithLogger(log.L()),
	)
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}

	if a.config.ImagePath != "" {
		still, err := capture.LoadStill(a.config.ImagePath)
		if err != nil {
			return fmt.Errorf("still image: %w", err)
		}
		a.camera = still
		a.logger.Info("using still image", "path", a.config.ImagePath)
	} else {
		a.camera = capture.NewDevice(a.config.Camera, log.L())
	}

	a.registry = metrics.NewRegistry()
	a.webServer = web.NewServer(web.Config{
		Port:     a.config.Port,
		WebDir:   a.config.WebDir,
		Registry: a.registry,
		Logger:   log.L(),
	})

	a.renderer = display.NewRenderer(display.Multi{
		a.webServer.Surface(),
		display.NewLogSurface(log.L()),
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	a.cancelRequests = cancel

	a.controller, err = session.NewController(session.Config{
		Camera:         a.camera,
		Classifier:     a.classifier,
		Renderer:       a.renderer,
		Interval:       a.config.PollInterval,
		RequestContext: reqCtx,
		OnFrame: func(f capture.Frame) {
			a.webServer.SendCameraFrame(f.JPEG)
		},
		Logger: log.L(),
	})
	if err != nil {
		cancel()
		return fmt.Errorf("session: %w", err)
	}
	a.webServer.SetController(a.controller)

	a.logger.Info("initialized",
		"backend", a.classifier.BaseURL(),
		"interval", a.config.PollInterval,
		"port", a.config.Port,
	)
	return nil
}

// Run checks the backend once, then serves the dashboard.
// Blocks until ctx is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	session.CheckBackend(ctx, a.classifier, a.renderer, log.L())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.webServer.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	}
}

// Shutdown stops the session and releases every component.
func (a *App) Shutdown() {
	if a.controller != nil {
		a.controller.Stop()
	}
	if a.cancelRequests != nil {
		a.cancelRequests()
	}
	if a.controller != nil {
		a.controller.Wait()
	}
	if a.webServer != nil {
		if err := a.webServer.Shutdown(); err != nil {
			a.logger.Warn("dashboard shutdown", "error", err)
		}
	}
	if a.classifier != nil {
		a.classifier.Close()
	}
	a.logger.Info("shutdown complete")
}

// Controller returns the session controller. Valid after Init.
func (a *App) Controller() *session.Controller {
	return a.controller
}
