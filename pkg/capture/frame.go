package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"
	"time"
)

// jpegDataURIPrefix is what a canvas produces for image/jpeg.
const jpegDataURIPrefix = "data:image/jpeg;base64,"

// Frame is one encoded snapshot. It lives only for a single request.
type Frame struct {
	JPEG       []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// DataURI returns the frame as a base64 data URI.
func (f Frame) DataURI() string {
	return jpegDataURIPrefix + base64.StdEncoding.EncodeToString(f.JPEG)
}

// Empty reports whether the frame carries no image data.
func (f Frame) Empty() bool {
	return len(f.JPEG) == 0
}

// FrameFromImage encodes img as JPEG at the given quality.
func FrameFromImage(img image.Image, quality int) (Frame, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return Frame{}, err
	}
	b := img.Bounds()
	return Frame{
		JPEG:       buf.Bytes(),
		Width:      b.Dx(),
		Height:     b.Dy(),
		CapturedAt: time.Now(),
	}, nil
}

// DecodeDataURI reverses DataURI. The prefix is optional.
func DecodeDataURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		if _, payload, ok := strings.Cut(uri, ","); ok {
			uri = payload
		}
	}
	return base64.StdEncoding.DecodeString(uri)
}
