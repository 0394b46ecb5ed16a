package emotion

import "testing"

func TestKnownLabelAppearance(t *testing.T) {
	want := map[string]Appearance{
		"happy":    {"😊", "#4CAF50"},
		"sad":      {"😢", "#2196F3"},
		"angry":    {"😠", "#F44336"},
		"surprise": {"😮", "#FF9800"},
		"fear":     {"😨", "#9C27B0"},
		"disgust":  {"🤢", "#795548"},
		"neutral":  {"😐", "#607D8B"},
	}

	if len(Known()) != len(want) {
		t.Fatalf("Expected %d known labels, got %d", len(want), len(Known()))
	}

	for _, l := range Known() {
		w, ok := want[l.String()]
		if !ok {
			t.Errorf("Unexpected label %q", l)
			continue
		}
		if got := Parse(l.String()); got != l {
			t.Errorf("Parse(%q) = %v, want %v", l.String(), got, l)
		}
		if got := l.Appearance(); got != w {
			t.Errorf("%s appearance = %+v, want %+v", l, got, w)
		}
	}
}

func TestUnknownLabelUsesFallback(t *testing.T) {
	for _, s := range []string{"contempt", "", "Happy", "HAPPY", "bored"} {
		l := Parse(s)
		if l != Unrecognized {
			t.Errorf("Parse(%q) = %v, want Unrecognized", s, l)
		}
		if l.Appearance() != Fallback() {
			t.Errorf("Parse(%q) appearance = %+v, want fallback", s, l.Appearance())
		}
	}

	if Label(42).Glyph() != "🤔" {
		t.Errorf("Out of range label should use fallback glyph, got %q", Label(42).Glyph())
	}
}

func TestFallbackDistinctFromKnown(t *testing.T) {
	fb := Fallback()
	for _, l := range Known() {
		if l.Glyph() == fb.Glyph {
			t.Errorf("%s shares the fallback glyph", l)
		}
		if l.Color() == fb.Color {
			t.Errorf("%s shares the fallback color", l)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"happy", "Happy"},
		{"surprise", "Surprise"},
		{"Neutral", "Neutral"},
		{"", ""},
		{"élan", "Élan"},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
