// Package capture acquires video frames from a local camera.
//
// A Camera is opened with Constraints and yields a Stream. The Stream is the
// one shared mutable resource of a detection session: only its owner starts
// and stops it.
package capture

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDeviceUnavailable is returned when the camera cannot be acquired,
	// either because it does not exist or access was denied.
	ErrDeviceUnavailable = errors.New("capture: camera unavailable")

	// ErrStreamStopped is returned when snapshotting a stopped stream.
	ErrStreamStopped = errors.New("capture: stream stopped")

	// ErrEmptyFrame is returned when the device produced no image data.
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// Camera opens video streams.
type Camera interface {
	// Open acquires a video-only stream. Errors wrap ErrDeviceUnavailable
	// when the device cannot be used.
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is a live video source.
type Stream interface {
	// Snapshot encodes the current raster at its current dimensions.
	Snapshot() (Frame, error)

	// Stop releases every track of the stream. Safe to call more than once.
	Stop()
}

// Constraints describes the requested stream.
type Constraints struct {
	Width   int // Requested frame width in pixels
	Height  int // Requested frame height in pixels
	Quality int // JPEG quality 1-100 for snapshots
}

// DefaultConstraints returns the 640x480 video-only request.
func DefaultConstraints() Constraints {
	return Constraints{
		Width:   640,
		Height:  480,
		Quality: 92,
	}
}

// Validate checks the requested values are usable.
func (c Constraints) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("capture: invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("capture: quality must be between 1 and 100, got %d", c.Quality)
	}
	return nil
}
