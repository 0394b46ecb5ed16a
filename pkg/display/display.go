// Package display turns classification results into visual state.
//
// The Renderer owns no state of its own: every call is translated into
// Surface mutations, so what is on screen is always derived from the latest
// result or an explicit status.
package display

import (
	"fmt"
	"sort"

	"github.com/teslashibe/go-emocam/pkg/classify"
	"github.com/teslashibe/go-emocam/pkg/emotion"
)

// Text shown by the renderer.
const (
	IdleLabel = "Waiting..."
)

// Surface is the set of paint operations a front end must offer.
// Implementations are not required to be safe for concurrent use; callers
// serialize access.
type Surface interface {
	SetEmoji(glyph, color string)
	SetLabel(text string)
	SetConfidence(text string)
	SetStatus(message string, active bool)
	SetProbabilityList(bars []Bar)
	ShowBanner(message string)
	SetControls(startEnabled, stopEnabled bool)
	Alert(message string)
}

// Bar is one row of the ranked probability list.
type Bar struct {
	Label       string  `json:"label"`        // Capitalized label
	Percent     float64 `json:"percent"`      // Raw percentage
	Text        string  `json:"text"`         // Percentage to 1 decimal, e.g. "87.3%"
	Width       float64 `json:"width"`        // Fill length on a 0-100 scale
	Color       string  `json:"color"`        // Gradient start
	GradientEnd string  `json:"gradient_end"` // Gradient end
}

// Renderer paints results onto a Surface.
type Renderer struct {
	surface Surface
}

// NewRenderer creates a renderer for s.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Render paints a classification result.
func (r *Renderer) Render(res *classify.Result) {
	look := emotion.Parse(res.Emotion).Appearance()

	r.surface.SetEmoji(look.Glyph, look.Color)
	r.surface.SetLabel(emotion.Capitalize(res.Emotion))
	r.surface.SetConfidence(fmt.Sprintf("Confidence: %.1f%%", res.Confidence))
	r.surface.SetStatus(fmt.Sprintf("Detected: %s (%.1f%%)", res.Emotion, res.Confidence), true)
	r.surface.SetProbabilityList(Rank(res.Probabilities))
}

// Reset restores the idle look. The status line is left alone.
func (r *Renderer) Reset() {
	r.surface.SetEmoji(emotion.IdleGlyph, "")
	r.surface.SetLabel(IdleLabel)
	r.surface.SetConfidence("")
	r.surface.SetProbabilityList(nil)
}

// SetStatus sets the status line and the active indicator.
func (r *Renderer) SetStatus(message string, active bool) {
	r.surface.SetStatus(message, active)
}

// ShowBanner adds a persistent error banner. Repeated calls add more banners.
func (r *Renderer) ShowBanner(message string) {
	r.surface.ShowBanner(message)
}

// SetControls toggles the start and stop affordances.
func (r *Renderer) SetControls(startEnabled, stopEnabled bool) {
	r.surface.SetControls(startEnabled, stopEnabled)
}

// Alert shows a blocking user-facing message.
func (r *Renderer) Alert(message string) {
	r.surface.Alert(message)
}

// Rank orders probabilities by percent, highest first. Ties keep the
// source order.
func Rank(probs classify.Probabilities) []Bar {
	bars := make([]Bar, 0, len(probs))
	for _, p := range probs {
		color := emotion.Parse(p.Label).Color()
		bars = append(bars, Bar{
			Label:       emotion.Capitalize(p.Label),
			Percent:     p.Percent,
			Text:        fmt.Sprintf("%.1f%%", p.Percent),
			Width:       clamp(p.Percent, 0, 100),
			Color:       color,
			GradientEnd: color + "dd",
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Percent > bars[j].Percent
	})
	return bars
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
