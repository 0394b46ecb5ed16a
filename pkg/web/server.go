// Package web serves the emocam dashboard: session controls, the live
// display state over websockets, a camera preview and Prometheus metrics.
package web

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teslashibe/go-emocam/pkg/hub"
	"github.com/teslashibe/go-emocam/pkg/metrics"
	"github.com/teslashibe/go-emocam/pkg/session"
)

// SessionController is the part of session.Controller the dashboard drives.
type SessionController interface {
	Start(ctx context.Context) error
	Stop()
	State() session.State
}

// Config configures the dashboard server.
type Config struct {
	Port     string
	WebDir   string               // Optional static files served at /
	Registry *prometheus.Registry // Optional; enables /metrics
	Logger   *slog.Logger
}

// Server is the web dashboard server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	displayHub *hub.Hub
	cameraHub  *hub.Hub
	surface    *Surface

	ctrlMu sync.RWMutex
	ctrl   SessionController
}

// NewServer creates the dashboard. Attach a controller with SetController
// before serving session routes.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "web")

	s := &Server{
		port:       cfg.Port,
		logger:     logger,
		displayHub: hub.New("display", logger),
		cameraHub:  hub.New("camera", logger),
	}
	s.surface = NewSurface(s.displayHub, logger)

	app := fiber.New(fiber.Config{
		AppName:               "emocam",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/session", s.handleSession)
	api.Post("/session/start", s.handleStart)
	api.Post("/session/stop", s.handleStop)
	api.Get("/display", s.handleDisplay)

	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(cfg.Registry)))
	}

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/display", websocket.New(s.handleDisplayWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	if cfg.WebDir != "" {
		app.Static("/", cfg.WebDir)
	}

	s.app = app
	return s
}

// SetController attaches the session controller.
func (s *Server) SetController(c SessionController) {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()
	s.ctrl = c
}

func (s *Server) controller() SessionController {
	s.ctrlMu.RLock()
	defer s.ctrlMu.RUnlock()
	return s.ctrl
}

// Surface returns the display surface backing /api/display and /ws/display.
func (s *Server) Surface() *Surface {
	return s.surface
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hubs until ctx is cancelled and serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	go s.displayHub.Run(ctx)
	go s.cameraHub.Run(ctx)

	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// SendCameraFrame pushes a JPEG preview to camera clients. Frames are
// dropped when nobody is watching.
func (s *Server) SendCameraFrame(jpegData []byte) {
	if s.cameraHub.ClientCount() == 0 {
		return
	}
	s.cameraHub.BroadcastBinary(jpegData)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
