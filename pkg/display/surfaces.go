package display

import (
	"log/slog"
	"strings"
)

// Multi fans every call out to several surfaces in order.
type Multi []Surface

// SetEmoji paints the glyph on every surface.
func (m Multi) SetEmoji(glyph, color string) {
	for _, s := range m {
		s.SetEmoji(glyph, color)
	}
}

// SetLabel sets the label on every surface.
func (m Multi) SetLabel(text string) {
	for _, s := range m {
		s.SetLabel(text)
	}
}

// SetConfidence sets the confidence text on every surface.
func (m Multi) SetConfidence(text string) {
	for _, s := range m {
		s.SetConfidence(text)
	}
}

// SetStatus sets the status line on every surface.
func (m Multi) SetStatus(message string, active bool) {
	for _, s := range m {
		s.SetStatus(message, active)
	}
}

// SetProbabilityList replaces the ranked list on every surface.
func (m Multi) SetProbabilityList(bars []Bar) {
	for _, s := range m {
		s.SetProbabilityList(bars)
	}
}

// ShowBanner adds the banner on every surface.
func (m Multi) ShowBanner(message string) {
	for _, s := range m {
		s.ShowBanner(message)
	}
}

// SetControls updates the start/stop affordances on every surface.
func (m Multi) SetControls(startEnabled, stopEnabled bool) {
	for _, s := range m {
		s.SetControls(startEnabled, stopEnabled)
	}
}

// Alert raises the alert on every surface.
func (m Multi) Alert(message string) {
	for _, s := range m {
		s.Alert(message)
	}
}

// LogSurface writes display changes to a structured logger. Status lines,
// banners and alerts are logged at info or above; the rest at debug.
type LogSurface struct {
	logger     *slog.Logger
	lastStatus string
}

// NewLogSurface creates a surface that logs to l.
func NewLogSurface(l *slog.Logger) *LogSurface {
	if l == nil {
		l = slog.Default()
	}
	return &LogSurface{logger: l.With("component", "display")}
}

// SetEmoji logs the glyph at debug level.
func (s *LogSurface) SetEmoji(glyph, color string) {
	s.logger.Debug("emoji", "glyph", glyph, "color", color)
}

// SetLabel logs the label at debug level.
func (s *LogSurface) SetLabel(text string) {
	s.logger.Debug("label", "text", text)
}

// SetConfidence logs the confidence text at debug level.
func (s *LogSurface) SetConfidence(text string) {
	s.logger.Debug("confidence", "text", text)
}

// SetStatus logs only when the message changes, so a steady stream of
// identical ticks does not flood the log.
func (s *LogSurface) SetStatus(message string, active bool) {
	if message == s.lastStatus {
		return
	}
	s.lastStatus = message
	s.logger.Info("status", "message", message, "active", active)
}

// SetProbabilityList logs the ranked list on one line at debug level.
func (s *LogSurface) SetProbabilityList(bars []Bar) {
	if len(bars) == 0 {
		s.logger.Debug("probabilities cleared")
		return
	}
	parts := make([]string, len(bars))
	for i, b := range bars {
		parts[i] = b.Label + " " + b.Text
	}
	s.logger.Debug("probabilities", "ranked", strings.Join(parts, ", "))
}

// ShowBanner logs the banner as a warning.
func (s *LogSurface) ShowBanner(message string) {
	s.logger.Warn("banner", "message", message)
}

// SetControls logs the affordance state at debug level.
func (s *LogSurface) SetControls(startEnabled, stopEnabled bool) {
	s.logger.Debug("controls", "start", startEnabled, "stop", stopEnabled)
}

// Alert logs the alert as an error.
func (s *LogSurface) Alert(message string) {
	s.logger.Error("alert", "message", message)
}
