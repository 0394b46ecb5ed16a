package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
)

// Still is a Camera that serves one fixed image. It stands in for a webcam
// when replaying a picture against the backend, and in tests.
type Still struct {
	Image image.Image
}

// LoadStill decodes a JPEG or PNG file into a Still camera.
func LoadStill(path string) (*Still, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("capture: decode %s: %w", path, err)
	}
	return &Still{Image: img}, nil
}

// Open returns a stream over the still image. Constraints other than
// quality are ignored; the image keeps its own size.
func (s *Still) Open(ctx context.Context, c Constraints) (Stream, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("%w: no image", ErrDeviceUnavailable)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &stillStream{img: s.Image, quality: c.Quality}, nil
}

type stillStream struct {
	mu      sync.Mutex
	img     image.Image
	quality int
	stopped bool
}

func (s *stillStream) Snapshot() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return Frame{}, ErrStreamStopped
	}
	return FrameFromImage(s.img, s.quality)
}

func (s *stillStream) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}
