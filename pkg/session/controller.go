// Package session runs the capture-and-poll loop.
//
// A Controller owns at most one active session: an open camera stream and
// the Poller that snapshots it. Each tick captures a frame on the poller
// goroutine and classifies it on its own goroutine, so requests overlap
// when the backend is slower than the tick period. Responses are painted
// only while their session is current and only if no later tick of the
// same session has already been painted.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-emocam/pkg/capture"
	"github.com/teslashibe/go-emocam/pkg/classify"
	"github.com/teslashibe/go-emocam/pkg/display"
	"github.com/teslashibe/go-emocam/pkg/metrics"
)

// Status lines and alerts shown by the controller.
const (
	StatusActive  = "Camera active - Detecting emotions..."
	StatusStopped = "Camera stopped"
	StatusNoFace  = "No face detected - Please face the camera"
	StatusNetwork = "Error connecting to server"

	AlertCamera = "Unable to access camera. Please check permissions."
)

// ErrSessionActive is returned by Start while a session is running.
var ErrSessionActive = errors.New("session: already active")

// State is a snapshot of the controller.
type State struct {
	ID        string     `json:"id,omitempty"`
	Active    bool       `json:"active"`
	StartedAt *time.Time `json:"started_at,omitempty"` // Nil while inactive
	Ticks     uint64     `json:"ticks"`
	Interval  string     `json:"interval"`
}

// Config holds controller dependencies and tunables.
type Config struct {
	Camera      capture.Camera
	Classifier  classify.Classifier
	Renderer    *display.Renderer
	Constraints capture.Constraints
	Interval    time.Duration

	// RequestContext is the parent of every classification request.
	// Stopping a session does not cancel it; cancel it to abort in-flight
	// requests at shutdown. Defaults to context.Background().
	RequestContext context.Context

	// OnFrame, when set, receives every captured frame on the poller
	// goroutine. It must not block.
	OnFrame func(capture.Frame)

	Logger *slog.Logger
}

// Controller starts and stops detection sessions.
type Controller struct {
	camera      capture.Camera
	classifier  classify.Classifier
	renderer    *display.Renderer
	constraints capture.Constraints
	interval    time.Duration
	reqCtx      context.Context
	onFrame     func(capture.Frame)
	logger      *slog.Logger

	// mu serializes session transitions and every renderer call.
	mu   sync.Mutex
	sess *session

	wg sync.WaitGroup
}

// session is non-nil on the controller only while active, and then holds
// both the stream and the poller.
type session struct {
	id          string
	startedAt   time.Time
	stream      capture.Stream
	poller      *Poller
	lastApplied uint64
}

// NewController validates cfg and returns a stopped controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Camera == nil {
		return nil, fmt.Errorf("session: camera required")
	}
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("session: classifier required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("session: renderer required")
	}
	if cfg.Constraints == (capture.Constraints{}) {
		cfg.Constraints = capture.DefaultConstraints()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.RequestContext == nil {
		cfg.RequestContext = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Controller{
		camera:      cfg.Camera,
		classifier:  cfg.Classifier,
		renderer:    cfg.Renderer,
		constraints: cfg.Constraints,
		interval:    cfg.Interval,
		reqCtx:      cfg.RequestContext,
		onFrame:     cfg.OnFrame,
		logger:      cfg.Logger.With("component", "session"),
	}, nil
}

// Start opens the camera and begins polling. On camera failure the user is
// alerted and nothing else changes.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != nil {
		return ErrSessionActive
	}

	stream, err := c.camera.Open(ctx, c.constraints)
	if err != nil {
		c.logger.Error("camera access failed", "error", err)
		c.renderer.Alert(AlertCamera)
		if !errors.Is(err, capture.ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", capture.ErrDeviceUnavailable, err)
		}
		return err
	}

	s := &session{
		id:        uuid.New().String(),
		startedAt: time.Now(),
		stream:    stream,
	}
	s.poller = NewPoller(c.interval, func(id uint64) { c.tick(s, id) })
	c.sess = s

	c.renderer.SetControls(false, true)
	c.renderer.SetStatus(StatusActive, true)
	s.poller.Start()
	metrics.SetSessionActive(true)

	c.logger.Info("session started", "session", s.id, "interval", c.interval)
	return nil
}

// Stop halts polling, releases the camera and resets the display. It is a
// no-op when no session is active. In-flight requests are not aborted;
// their responses are discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.sess
	if s == nil {
		return
	}

	s.poller.Stop()
	s.stream.Stop()
	c.sess = nil

	c.renderer.SetControls(true, false)
	c.renderer.SetStatus(StatusStopped, false)
	c.renderer.Reset()
	metrics.SetSessionActive(false)

	c.logger.Info("session stopped", "session", s.id, "ticks", s.poller.Ticks())
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{Interval: c.interval.String()}
	if s := c.sess; s != nil {
		st.ID = s.id
		st.Active = true
		started := s.startedAt
		st.StartedAt = &started
		st.Ticks = s.poller.Ticks()
	}
	return st
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess != nil
}

// Wait blocks until every in-flight classification has finished. Call it
// after Stop.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// tick runs on the poller goroutine. It must not take c.mu: Stop holds it
// while waiting for the poller to exit.
func (c *Controller) tick(s *session, id uint64) {
	metrics.RecordTick()

	frame, err := s.stream.Snapshot()
	if err != nil {
		metrics.RecordSnapshotError()
		c.logger.Warn("snapshot failed", "session", s.id, "tick", id, "error", err)
		return
	}
	if c.onFrame != nil {
		c.onFrame(frame)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.classify(s, id, frame)
	}()
}

// classify performs one request and applies its outcome.
func (c *Controller) classify(s *session, id uint64, frame capture.Frame) {
	metrics.RecordRequestStart()
	start := time.Now()
	res, err := c.classifier.Classify(c.reqCtx, frame)
	metrics.RecordRequestEnd(outcome(err), time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != s {
		metrics.RecordDropped(metrics.DropInactive)
		c.logger.Debug("response after stop dropped", "session", s.id, "tick", id)
		return
	}
	if id <= s.lastApplied {
		metrics.RecordDropped(metrics.DropSuperseded)
		c.logger.Debug("stale response dropped", "session", s.id, "tick", id, "latest", s.lastApplied)
		return
	}
	s.lastApplied = id

	c.apply(s, id, res, err)
}

// apply maps a classification outcome onto the display. Caller holds c.mu.
func (c *Controller) apply(s *session, id uint64, res *classify.Result, err error) {
	var pe *classify.PredictionError
	switch {
	case err == nil:
		c.renderer.Render(res)
	case errors.Is(err, classify.ErrNoFaceDetected):
		c.logger.Debug("no face detected", "session", s.id, "tick", id)
		c.renderer.SetStatus(StatusNoFace, false)
	case errors.As(err, &pe):
		c.logger.Warn("prediction error", "session", s.id, "tick", id, "status", pe.StatusCode, "error", pe.Message)
	default:
		c.logger.Error("network error", "session", s.id, "tick", id, "error", err)
		c.renderer.SetStatus(StatusNetwork, false)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, classify.ErrNoFaceDetected):
		return metrics.OutcomeNoFace
	case classify.IsPredictionError(err):
		return metrics.OutcomePrediction
	default:
		return metrics.OutcomeNetwork
	}
}
