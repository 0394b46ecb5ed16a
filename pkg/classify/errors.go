package classify

import (
	"errors"
	"fmt"
)

// NoFaceSentinel is the backend's error string when no face is in the frame.
const NoFaceSentinel = "No face detected"

var (
	// ErrNoFaceDetected is returned when the backend reports NoFaceSentinel.
	ErrNoFaceDetected = errors.New("classify: no face detected")

	// ErrMalformedResponse is wrapped by NetworkError when a body cannot be used.
	ErrMalformedResponse = errors.New("classify: malformed response")
)

// PredictionError is any other error the backend reports on /predict.
type PredictionError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the backend's error field.
	Message string
}

// Error implements the error interface.
func (e *PredictionError) Error() string {
	return fmt.Sprintf("classify: prediction error %d: %s", e.StatusCode, e.Message)
}

// IsServerError returns true for HTTP 5xx.
func (e *PredictionError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NetworkError covers transport failures and responses that cannot be parsed.
type NetworkError struct {
	// Op is the endpoint being called ("predict" or "health").
	Op  string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("classify [%s]: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

func networkError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &NetworkError{Op: op, Err: err}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsPredictionError reports whether err is (or wraps) a PredictionError.
func IsPredictionError(err error) bool {
	var pe *PredictionError
	return errors.As(err, &pe)
}
