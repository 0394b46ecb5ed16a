package display

import "sync"

// Painted is everything a Surface has been told to show.
type Painted struct {
	Glyph        string
	Color        string
	Label        string
	Confidence   string
	Status       string
	Active       bool
	Bars         []Bar
	Banners      []string // Newest first
	Alerts       []string
	StartEnabled bool
	StopEnabled  bool

	// Calls counts every Surface method invocation by name.
	Calls map[string]int
}

// Recorder is an in-memory Surface that keeps the last painted value of
// every element. It is safe for concurrent use and is meant for tests and
// headless inspection.
type Recorder struct {
	mu sync.Mutex
	p  Painted
}

// NewRecorder returns a Recorder in the page-load state: start enabled,
// stop disabled.
func NewRecorder() *Recorder {
	return &Recorder{p: Painted{
		StartEnabled: true,
		Calls:        make(map[string]int),
	}}
}

func (r *Recorder) record(name string, apply func(p *Painted)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p.Calls == nil {
		r.p.Calls = make(map[string]int)
	}
	r.p.Calls[name]++
	apply(&r.p)
}

// SetEmoji records the glyph and color.
func (r *Recorder) SetEmoji(glyph, color string) {
	r.record("SetEmoji", func(p *Painted) { p.Glyph, p.Color = glyph, color })
}

// SetLabel records the label text.
func (r *Recorder) SetLabel(text string) {
	r.record("SetLabel", func(p *Painted) { p.Label = text })
}

// SetConfidence records the confidence text.
func (r *Recorder) SetConfidence(text string) {
	r.record("SetConfidence", func(p *Painted) { p.Confidence = text })
}

// SetStatus records the status line and indicator.
func (r *Recorder) SetStatus(message string, active bool) {
	r.record("SetStatus", func(p *Painted) { p.Status, p.Active = message, active })
}

// SetProbabilityList records a copy of bars.
func (r *Recorder) SetProbabilityList(bars []Bar) {
	r.record("SetProbabilityList", func(p *Painted) { p.Bars = append([]Bar(nil), bars...) })
}

// ShowBanner records the banner ahead of earlier ones.
func (r *Recorder) ShowBanner(message string) {
	r.record("ShowBanner", func(p *Painted) { p.Banners = append([]string{message}, p.Banners...) })
}

// SetControls records the start/stop affordances.
func (r *Recorder) SetControls(startEnabled, stopEnabled bool) {
	r.record("SetControls", func(p *Painted) { p.StartEnabled, p.StopEnabled = startEnabled, stopEnabled })
}

// Alert records the alert.
func (r *Recorder) Alert(message string) {
	r.record("Alert", func(p *Painted) { p.Alerts = append(p.Alerts, message) })
}

// Snapshot returns a copy of what has been painted so far.
func (r *Recorder) Snapshot() Painted {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.p
	out.Bars = append([]Bar(nil), r.p.Bars...)
	out.Banners = append([]string(nil), r.p.Banners...)
	out.Alerts = append([]string(nil), r.p.Alerts...)
	out.Calls = make(map[string]int, len(r.p.Calls))
	for k, v := range r.p.Calls {
		out.Calls[k] = v
	}
	return out
}
