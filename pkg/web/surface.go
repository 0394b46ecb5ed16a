package web

import (
	"log/slog"
	"sync"

	"github.com/teslashibe/go-emocam/pkg/display"
	"github.com/teslashibe/go-emocam/pkg/emotion"
	"github.com/teslashibe/go-emocam/pkg/hub"
)

// Event types pushed over /ws/display.
const (
	EventState = "state"
	EventAlert = "alert"
)

// DisplayState is the dashboard's view of the page.
type DisplayState struct {
	Glyph        string        `json:"glyph"`
	Color        string        `json:"color"`
	Label        string        `json:"label"`
	Confidence   string        `json:"confidence"`
	Status       string        `json:"status"`
	Active       bool          `json:"active"`
	Bars         []display.Bar `json:"bars"`
	Banners      []string      `json:"banners"`
	StartEnabled bool          `json:"start_enabled"`
	StopEnabled  bool          `json:"stop_enabled"`
}

// Event is one message on /ws/display.
type Event struct {
	Type    string        `json:"type"`
	State   *DisplayState `json:"state,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Surface keeps the current DisplayState and pushes every change to the
// display hub.
type Surface struct {
	hub    *hub.Hub
	logger *slog.Logger

	mu    sync.RWMutex
	state DisplayState
}

// NewSurface returns a Surface in the page-load state.
func NewSurface(h *hub.Hub, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		hub:    h,
		logger: logger,
		state: DisplayState{
			Glyph:        emotion.IdleGlyph,
			Label:        display.IdleLabel,
			StartEnabled: true,
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Surface) Snapshot() DisplayState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Surface) snapshotLocked() DisplayState {
	out := s.state
	out.Bars = append([]display.Bar(nil), s.state.Bars...)
	out.Banners = append([]string(nil), s.state.Banners...)
	return out
}

func (s *Surface) update(fn func(st *DisplayState)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.hub.BroadcastJSON(Event{Type: EventState, State: &snap}); err != nil {
		s.logger.Error("broadcast state failed", "error", err)
	}
}

// SetEmoji updates the glyph and color and broadcasts the state.
func (s *Surface) SetEmoji(glyph, color string) {
	s.update(func(st *DisplayState) { st.Glyph, st.Color = glyph, color })
}

// SetLabel updates the label and broadcasts the state.
func (s *Surface) SetLabel(text string) {
	s.update(func(st *DisplayState) { st.Label = text })
}

// SetConfidence updates the confidence text and broadcasts the state.
func (s *Surface) SetConfidence(text string) {
	s.update(func(st *DisplayState) { st.Confidence = text })
}

// SetStatus updates the status line and broadcasts the state.
func (s *Surface) SetStatus(message string, active bool) {
	s.update(func(st *DisplayState) { st.Status, st.Active = message, active })
}

// SetProbabilityList replaces the bars and broadcasts the state.
func (s *Surface) SetProbabilityList(bars []display.Bar) {
	s.update(func(st *DisplayState) { st.Bars = append([]display.Bar(nil), bars...) })
}

// ShowBanner inserts the banner at the top of the list.
func (s *Surface) ShowBanner(message string) {
	s.update(func(st *DisplayState) { st.Banners = append([]string{message}, st.Banners...) })
}

// SetControls updates the start/stop affordances and broadcasts the state.
func (s *Surface) SetControls(startEnabled, stopEnabled bool) {
	s.update(func(st *DisplayState) { st.StartEnabled, st.StopEnabled = startEnabled, stopEnabled })
}

// Alert is transient and is not part of the state.
func (s *Surface) Alert(message string) {
	if err := s.hub.BroadcastJSON(Event{Type: EventAlert, Message: message}); err != nil {
		s.logger.Error("broadcast alert failed", "error", err)
	}
}

var _ display.Surface = (*Surface)(nil)
