package classify

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Probability is one label's percentage.
type Probability struct {
	Label   string
	Percent float64
}

// Probabilities is a label->percent mapping that keeps the key order of the
// JSON object it was decoded from.
type Probabilities []Probability

// Get returns the percentage for label.
func (p Probabilities) Get(label string) (float64, bool) {
	for _, e := range p {
		if e.Label == label {
			return e.Percent, true
		}
	}
	return 0, false
}

// MarshalJSON writes the entries as an object in slice order.
func (p Probabilities) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, float64](len(p))
	for _, e := range p {
		om.Set(e.Label, e.Percent)
	}
	return om.MarshalJSON()
}

// UnmarshalJSON reads an object of numbers, preserving key order. A
// duplicate key keeps its first position and its last value.
func (p *Probabilities) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}

	om := orderedmap.New[string, float64]()
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}

	out := make(Probabilities, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Probability{Label: pair.Key, Percent: pair.Value})
	}
	*p = out
	return nil
}
