package web

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-emocam/pkg/capture"
	"github.com/teslashibe/go-emocam/pkg/hub"
	"github.com/teslashibe/go-emocam/pkg/session"
)

var errNoController = errors.New("web: session controller not configured")

// handleSession returns the session state.
func (s *Server) handleSession(c *fiber.Ctx) error {
	ctrl := s.controller()
	if ctrl == nil {
		return unavailable(c, errNoController)
	}
	return c.JSON(ctrl.State())
}

// handleStart starts a session.
func (s *Server) handleStart(c *fiber.Ctx) error {
	ctrl := s.controller()
	if ctrl == nil {
		return unavailable(c, errNoController)
	}

	if err := ctrl.Start(c.UserContext()); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionActive):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, capture.ErrDeviceUnavailable):
			return unavailable(c, err)
		default:
			s.logger.Error("start session failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(ctrl.State())
}

// handleStop stops the session, if any.
func (s *Server) handleStop(c *fiber.Ctx) error {
	ctrl := s.controller()
	if ctrl == nil {
		return unavailable(c, errNoController)
	}
	ctrl.Stop()
	return c.JSON(ctrl.State())
}

// handleDisplay returns what the page currently shows.
func (s *Server) handleDisplay(c *fiber.Ctx) error {
	return c.JSON(s.surface.Snapshot())
}

// handleDisplayWS greets the client with the current state, then streams
// display events.
func (s *Server) handleDisplayWS(c *websocket.Conn) {
	client := hub.NewClient(s.displayHub, c)

	snap := s.surface.Snapshot()
	if data, err := json.Marshal(Event{Type: EventState, State: &snap}); err == nil {
		client.Queue(hub.NewJSONMessage(data))
	}
	client.Run()
}

// handleCameraWS streams JPEG previews.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.NewClient(s.cameraHub, c).Run()
}

func unavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
}
