package classify

import (
	"context"
	"sync"

	"github.com/teslashibe/go-emocam/pkg/capture"
)

// Mock implements Classifier for testing.
type Mock struct {
	// ClassifyFunc is called when Classify is invoked.
	ClassifyFunc func(ctx context.Context, frame capture.Frame) (*Result, error)

	// HealthFunc is called when Health is invoked.
	HealthFunc func(ctx context.Context) (*Health, error)

	mu     sync.Mutex
	frames []capture.Frame
	health int
}

// NewMock creates a mock that always answers "neutral" and reports a loaded model.
func NewMock() *Mock {
	return &Mock{
		ClassifyFunc: func(ctx context.Context, frame capture.Frame) (*Result, error) {
			return &Result{
				Emotion:    "neutral",
				Confidence: 100,
				Probabilities: Probabilities{
					{Label: "neutral", Percent: 100},
				},
			}, nil
		},
		HealthFunc: func(ctx context.Context) (*Health, error) {
			return &Health{ModelLoaded: true, Status: "running"}, nil
		},
	}
}

// Classify records the frame and calls ClassifyFunc.
func (m *Mock) Classify(ctx context.Context, frame capture.Frame) (*Result, error) {
	m.mu.Lock()
	m.frames = append(m.frames, frame)
	fn := m.ClassifyFunc
	m.mu.Unlock()

	if fn == nil {
		return nil, &NetworkError{Op: opPredict, Err: ErrMalformedResponse}
	}
	return fn(ctx, frame)
}

// Health calls HealthFunc.
func (m *Mock) Health(ctx context.Context) (*Health, error) {
	m.mu.Lock()
	m.health++
	fn := m.HealthFunc
	m.mu.Unlock()

	if fn == nil {
		return &Health{}, nil
	}
	return fn(ctx)
}

// ClassifyCount returns how many frames were classified.
func (m *Mock) ClassifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// HealthCount returns how many health checks were made.
func (m *Mock) HealthCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.health
}

// Frames returns a copy of the recorded frames.
func (m *Mock) Frames() []capture.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]capture.Frame, len(m.frames))
	copy(out, m.frames)
	return out
}

var _ Classifier = (*Mock)(nil)
