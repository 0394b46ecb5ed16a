package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teslashibe/go-emocam/internal/httpc"
	"github.com/teslashibe/go-emocam/pkg/capture"
)

const (
	opPredict = "predict"
	opHealth  = "health"

	// maxBodySize bounds what we read from the backend.
	maxBodySize = 1 << 20
)

// Client is the HTTP implementation of Classifier.
type Client struct {
	baseURL string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new backend client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("classify: invalid base URL %q: %w", cfg.BaseURL, err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = httpc.NewClient(cfg.Timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		config:  cfg,
		http:    hc,
		logger:  logger.With("component", "classify.client"),
	}, nil
}

// BaseURL returns the backend origin in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Classify posts the frame to /predict.
func (c *Client) Classify(ctx context.Context, frame capture.Frame) (*Result, error) {
	start := time.Now()

	resp, err := c.post(ctx, "/predict", predictRequest{Image: frame.DataURI()})
	if err != nil {
		return nil, networkError(opPredict, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, networkError(opPredict, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp.StatusCode, body)
	}

	var pr predictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, networkError(opPredict, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if pr.Emotion == nil || pr.Confidence == nil {
		return nil, networkError(opPredict, fmt.Errorf("%w: missing emotion or confidence", ErrMalformedResponse))
	}

	res := &Result{
		Emotion:       *pr.Emotion,
		Confidence:    *pr.Confidence,
		Probabilities: pr.Probabilities,
		FaceDetected:  pr.FaceDetected,
		LatencyMs:     time.Since(start).Milliseconds(),
	}

	c.logger.Debug("classified frame",
		"emotion", res.Emotion,
		"confidence", res.Confidence,
		"width", frame.Width,
		"height", frame.Height,
		"latency_ms", res.LatencyMs)

	return res, nil
}

// Health calls /health once. The body is decoded whatever the status code;
// a missing model_loaded field reads as false.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, networkError(opHealth, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(opHealth, err)
	}
	defer resp.Body.Close()

	var h Health
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&h); err != nil {
		return nil, networkError(opHealth, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	c.logger.Debug("health checked", "status_code", resp.StatusCode, "model_loaded", h.ModelLoaded)
	return &h, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// post sends a JSON POST request.
func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// parseError maps a non-2xx /predict body to the error taxonomy.
func (c *Client) parseError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return networkError(opPredict, fmt.Errorf("%w: status %d: %v", ErrMalformedResponse, status, err))
	}
	if er.Error == nil {
		return &PredictionError{StatusCode: status, Message: http.StatusText(status)}
	}
	if *er.Error == NoFaceSentinel {
		return ErrNoFaceDetected
	}
	return &PredictionError{StatusCode: status, Message: *er.Error}
}

var _ Classifier = (*Client)(nil)
