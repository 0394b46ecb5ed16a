// Package classify talks to the remote emotion-classification backend.
//
// The backend is an opaque HTTP service with two endpoints:
//
//	GET  /health   -> {"model_loaded": bool}
//	POST /predict  {"image": "<data URI>"}
//	               -> 200 {"emotion", "confidence", "all_probabilities"}
//	               -> non-200 {"error": "..."}
//
// Example usage:
//
//	client, _ := classify.NewClient(
//	    classify.WithBaseURL("http://localhost:5000"),
//	    classify.WithTimeout(3*time.Second),
//	)
//	defer client.Close()
//
//	res, err := client.Classify(ctx, frame)
//	switch {
//	case errors.Is(err, classify.ErrNoFaceDetected):
//	    // ask the user to face the camera
//	case err != nil:
//	    // connectivity or prediction error
//	default:
//	    fmt.Println(res.Emotion, res.Confidence)
//	}
package classify

import (
	"context"

	"github.com/teslashibe/go-emocam/pkg/capture"
)

// Classifier is what a detection session needs from the backend.
type Classifier interface {
	// Classify sends one frame and returns the backend's verdict.
	Classify(ctx context.Context, frame capture.Frame) (*Result, error)

	// Health reports whether the backend is up and has a model loaded.
	Health(ctx context.Context) (*Health, error)
}

// Result is one classification. Percentages are on a 0-100 scale.
type Result struct {
	// Emotion is the dominant label as sent by the backend.
	Emotion string `json:"emotion"`

	// Confidence is the dominant label's percentage.
	Confidence float64 `json:"confidence"`

	// Probabilities covers every label, in the backend's key order.
	Probabilities Probabilities `json:"all_probabilities"`

	// FaceDetected is set by backends that report it.
	FaceDetected bool `json:"face_detected,omitempty"`

	// LatencyMs is the round-trip time in milliseconds.
	LatencyMs int64 `json:"-"`
}

// Health is the backend's /health answer.
type Health struct {
	ModelLoaded bool   `json:"model_loaded"`
	Status      string `json:"status,omitempty"`
}

// predictRequest is the /predict body.
type predictRequest struct {
	Image string `json:"image"`
}

// predictResponse distinguishes missing fields from zero values.
type predictResponse struct {
	Emotion       *string       `json:"emotion"`
	Confidence    *float64      `json:"confidence"`
	Probabilities Probabilities `json:"all_probabilities"`
	FaceDetected  bool          `json:"face_detected"`
}

// errorResponse is the non-2xx body.
type errorResponse struct {
	Error *string `json:"error"`
}
