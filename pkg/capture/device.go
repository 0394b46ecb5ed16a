package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Device is a local camera opened through OpenCV.
type Device struct {
	// ID is the device index (0 for the default webcam) or a path/URL
	// accepted by OpenCV.
	ID     any
	Logger *slog.Logger
}

// NewDevice returns a Device for the given OpenCV device id.
func NewDevice(id any, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{ID: id, Logger: logger.With("component", "capture.device")}
}

// Open acquires the camera and requests the constrained resolution. The
// device may pick a different one; snapshots always report what was read.
func (d *Device) Open(ctx context.Context, c Constraints) (Stream, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc, err := gocv.OpenVideoCapture(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrDeviceUnavailable, d.ID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %v not opened", ErrDeviceUnavailable, d.ID)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(c.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(c.Height))

	mat := gocv.NewMat()
	s := &deviceStream{
		vc:      vc,
		mat:     mat,
		quality: c.Quality,
	}

	d.Logger.Info("camera opened",
		"device", d.ID,
		"width", int(vc.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(vc.Get(gocv.VideoCaptureFrameHeight)))

	return s, nil
}

// deviceStream reuses one Mat for every read.
type deviceStream struct {
	mu      sync.Mutex
	vc      *gocv.VideoCapture
	mat     gocv.Mat
	quality int
	stopped bool
}

// Snapshot reads the next raster and encodes it as JPEG. Width and height
// come from the raster itself, so a renegotiated stream is reflected.
func (s *deviceStream) Snapshot() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return Frame{}, ErrStreamStopped
	}
	if ok := s.vc.Read(&s.mat); !ok || s.mat.Empty() {
		return Frame{}, ErrEmptyFrame
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, s.mat, []int{int(gocv.IMWriteJpegQuality), s.quality})
	if err != nil {
		return Frame{}, fmt.Errorf("capture: encode jpeg: %w", err)
	}
	defer buf.Close()

	// The buffer is freed on Close.
	jpeg := append([]byte(nil), buf.GetBytes()...)

	return Frame{
		JPEG:       jpeg,
		Width:      s.mat.Cols(),
		Height:     s.mat.Rows(),
		CapturedAt: time.Now(),
	}, nil
}

// Stop closes the capture and releases the Mat.
func (s *deviceStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.vc.Close()
	s.mat.Close()
}
