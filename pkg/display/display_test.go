package display

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/teslashibe/go-emocam/pkg/classify"
	"github.com/teslashibe/go-emocam/pkg/emotion"
)

func happyResult() *classify.Result {
	return &classify.Result{
		Emotion:    "happy",
		Confidence: 87.3,
		Probabilities: classify.Probabilities{
			{Label: "happy", Percent: 87.3},
			{Label: "sad", Percent: 2.1},
			{Label: "angry", Percent: 1.0},
			{Label: "surprise", Percent: 3.0},
			{Label: "fear", Percent: 1.2},
			{Label: "disgust", Percent: 0.4},
			{Label: "neutral", Percent: 5.0},
		},
	}
}

func TestRenderHappy(t *testing.T) {
	rec := NewRecorder()
	NewRenderer(rec).Render(happyResult())
	p := rec.Snapshot()

	if p.Status != "Detected: happy (87.3%)" {
		t.Errorf("Unexpected status: %q", p.Status)
	}
	if !p.Active {
		t.Error("Expected active indicator")
	}
	if p.Confidence != "Confidence: 87.3%" {
		t.Errorf("Unexpected confidence: %q", p.Confidence)
	}
	if p.Label != "Happy" {
		t.Errorf("Expected label Happy, got %q", p.Label)
	}
	if p.Glyph != "😊" || p.Color != "#4CAF50" {
		t.Errorf("Unexpected glyph/color: %s %s", p.Glyph, p.Color)
	}
	if len(p.Bars) != 7 {
		t.Fatalf("Expected 7 bars, got %d", len(p.Bars))
	}
	first := p.Bars[0]
	if first.Label != "Happy" || first.Text != "87.3%" {
		t.Errorf("Unexpected first bar: %+v", first)
	}
	if first.Width != 87.3 {
		t.Errorf("Expected width 87.3, got %v", first.Width)
	}
	if first.GradientEnd != "#4CAF50dd" {
		t.Errorf("Unexpected gradient end %s", first.GradientEnd)
	}
}

func TestRenderUsesLabelTable(t *testing.T) {
	for _, l := range emotion.Known() {
		rec := NewRecorder()
		NewRenderer(rec).Render(&classify.Result{Emotion: l.String(), Confidence: 50})
		p := rec.Snapshot()
		if p.Glyph != l.Glyph() || p.Color != l.Color() {
			t.Errorf("%s: got %s %s, want %s %s", l, p.Glyph, p.Color, l.Glyph(), l.Color())
		}
	}
}

func TestRenderUnknownLabelUsesFallback(t *testing.T) {
	rec := NewRecorder()
	NewRenderer(rec).Render(&classify.Result{
		Emotion:       "contempt",
		Confidence:    61.25,
		Probabilities: classify.Probabilities{{Label: "contempt", Percent: 61.25}},
	})
	p := rec.Snapshot()

	fb := emotion.Fallback()
	if p.Glyph != fb.Glyph || p.Color != fb.Color {
		t.Errorf("Expected fallback, got %s %s", p.Glyph, p.Color)
	}
	if p.Label != "Contempt" {
		t.Errorf("Expected Contempt, got %q", p.Label)
	}
	if p.Bars[0].Color != fb.Color {
		t.Errorf("Expected fallback bar color, got %s", p.Bars[0].Color)
	}
}

func TestRankNonIncreasing(t *testing.T) {
	cases := []classify.Probabilities{
		happyResult().Probabilities,
		{{Label: "a", Percent: 10}, {Label: "b", Percent: 30}, {Label: "c", Percent: 20}, {Label: "d", Percent: 30}, {Label: "e", Percent: 0}},
		{{Label: "neutral", Percent: 100}},
		nil,
	}

	for _, probs := range cases {
		bars := Rank(probs)
		if len(bars) != len(probs) {
			t.Fatalf("Expected %d bars, got %d", len(probs), len(bars))
		}
		for i := 1; i < len(bars); i++ {
			if bars[i-1].Percent < bars[i].Percent {
				t.Errorf("Order broken at %d: %v < %v", i, bars[i-1].Percent, bars[i].Percent)
			}
		}
	}
}

func TestRankTiesKeepSourceOrder(t *testing.T) {
	bars := Rank(classify.Probabilities{{Label: "fear", Percent: 10}, {Label: "sad", Percent: 40}, {Label: "angry", Percent: 40}, {Label: "happy", Percent: 10}})
	got := []string{bars[0].Label, bars[1].Label, bars[2].Label, bars[3].Label}
	want := []string{"Sad", "Angry", "Fear", "Happy"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestRankClampsWidth(t *testing.T) {
	bars := Rank(classify.Probabilities{{Label: "happy", Percent: 120}, {Label: "sad", Percent: -3}})
	if bars[0].Width != 100 {
		t.Errorf("Expected width clamped to 100, got %v", bars[0].Width)
	}
	if bars[1].Width != 0 {
		t.Errorf("Expected width clamped to 0, got %v", bars[1].Width)
	}
	if bars[0].Text != "120.0%" {
		t.Errorf("Text should keep the raw value, got %s", bars[0].Text)
	}
}

func TestResetLeavesStatus(t *testing.T) {
	rec := NewRecorder()
	r := NewRenderer(rec)
	r.Render(happyResult())
	r.SetStatus("Camera stopped", false)
	r.Reset()
	p := rec.Snapshot()

	if p.Glyph != emotion.IdleGlyph {
		t.Errorf("Expected idle glyph, got %s", p.Glyph)
	}
	if p.Label != IdleLabel {
		t.Errorf("Expected %q, got %q", IdleLabel, p.Label)
	}
	if p.Confidence != "" {
		t.Errorf("Expected empty confidence, got %q", p.Confidence)
	}
	if len(p.Bars) != 0 {
		t.Errorf("Expected no bars, got %d", len(p.Bars))
	}
	if p.Status != "Camera stopped" || p.Active {
		t.Errorf("Reset must not touch status, got %q active=%v", p.Status, p.Active)
	}
}

func TestBannersAreNotDeduplicated(t *testing.T) {
	rec := NewRecorder()
	r := NewRenderer(rec)
	r.ShowBanner("first")
	r.ShowBanner("first")
	r.ShowBanner("second")

	p := rec.Snapshot()
	if len(p.Banners) != 3 {
		t.Fatalf("Expected 3 banners, got %d", len(p.Banners))
	}
	if p.Banners[0] != "second" {
		t.Errorf("Newest banner should be first, got %q", p.Banners[0])
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	r := NewRenderer(Multi{a, b})
	r.Render(happyResult())
	r.SetControls(false, true)
	r.Alert("boom")

	for _, rec := range []*Recorder{a, b} {
		p := rec.Snapshot()
		if p.Label != "Happy" || p.StartEnabled || !p.StopEnabled || len(p.Alerts) != 1 {
			t.Errorf("Surface missed a call: %+v", p)
		}
	}
}

func TestLogSurfaceDeduplicatesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := NewLogSurface(logger)

	s.SetStatus("Detected: happy (87.3%)", true)
	s.SetStatus("Detected: happy (87.3%)", true)
	s.SetStatus("Camera stopped", false)
	s.ShowBanner("Model not loaded!")

	out := buf.String()
	if n := strings.Count(out, "msg=status"); n != 2 {
		t.Errorf("Expected 2 status lines, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "Model not loaded!") {
		t.Error("Expected banner in log output")
	}
}
