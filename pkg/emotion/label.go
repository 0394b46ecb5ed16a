// Package emotion defines the closed set of emotion labels the classifier
// can return, together with the glyph and color used to display each one.
package emotion

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Label is one of the seven emotion categories, or Unrecognized.
type Label int

const (
	// Unrecognized is any label outside the known set.
	Unrecognized Label = iota
	Happy
	Sad
	Angry
	Surprise
	Fear
	Disgust
	Neutral
)

// IdleGlyph is shown while no classification is displayed.
const IdleGlyph = "😊"

// Appearance is how a label is painted.
type Appearance struct {
	Glyph string
	Color string
}

var names = [...]string{
	Unrecognized: "unrecognized",
	Happy:        "happy",
	Sad:          "sad",
	Angry:        "angry",
	Surprise:     "surprise",
	Fear:         "fear",
	Disgust:      "disgust",
	Neutral:      "neutral",
}

// appearances is indexed by Label; Unrecognized holds the fallback pair.
var appearances = [...]Appearance{
	Unrecognized: {Glyph: "🤔", Color: "#333333"},
	Happy:        {Glyph: "😊", Color: "#4CAF50"},
	Sad:          {Glyph: "😢", Color: "#2196F3"},
	Angry:        {Glyph: "😠", Color: "#F44336"},
	Surprise:     {Glyph: "😮", Color: "#FF9800"},
	Fear:         {Glyph: "😨", Color: "#9C27B0"},
	Disgust:      {Glyph: "🤢", Color: "#795548"},
	Neutral:      {Glyph: "😐", Color: "#607D8B"},
}

// Known returns the seven recognized labels in a fixed order.
func Known() []Label {
	return []Label{Happy, Sad, Angry, Surprise, Fear, Disgust, Neutral}
}

// Parse maps a backend label string to a Label. Matching is exact, the
// backend emits lowercase names.
func Parse(s string) Label {
	for l := Happy; l <= Neutral; l++ {
		if names[l] == s {
			return l
		}
	}
	return Unrecognized
}

// String returns the backend name of the label.
func (l Label) String() string {
	if l < Unrecognized || l > Neutral {
		return names[Unrecognized]
	}
	return names[l]
}

// Appearance returns the glyph and color for the label. Out of range
// values get the fallback pair.
func (l Label) Appearance() Appearance {
	if l <= Unrecognized || l > Neutral {
		return appearances[Unrecognized]
	}
	return appearances[l]
}

// Glyph returns the label's emoji.
func (l Label) Glyph() string { return l.Appearance().Glyph }

// Color returns the label's hex color.
func (l Label) Color() string { return l.Appearance().Color }

// Fallback returns the appearance used for unrecognized labels.
func Fallback() Appearance {
	return appearances[Unrecognized]
}

// Capitalize upper-cases the first rune of s, leaving the rest untouched.
// It is used for raw backend strings, which may be outside the known set.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
