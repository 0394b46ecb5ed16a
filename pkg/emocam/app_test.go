package emocam

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/teslashibe/go-emocam/pkg/session"
	"github.com/teslashibe/go-emocam/pkg/web"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("Unexpected default backend %q", cfg.BackendURL)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("Unexpected default interval %v", cfg.PollInterval)
	}
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("EMOCAM_BACKEND_URL", "http://backend:9000")
	t.Setenv("EMOCAM_CAMERA", "2")
	t.Setenv("EMOCAM_PORT", "9999")
	t.Setenv("EMOCAM_POLL_INTERVAL", "250ms")
	t.Setenv("EMOCAM_WEB_DIR", "/srv/emocam")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.LoadEnvConfig()

	if cfg.BackendURL != "http://backend:9000" || cfg.Camera != 2 || cfg.Port != "9999" {
		t.Errorf("Env not applied: %+v", cfg)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", cfg.PollInterval)
	}
	if cfg.WebDir != "/srv/emocam" {
		t.Errorf("Expected web dir from env, got %q", cfg.WebDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug, got %q", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *Config)
		field string
	}{
		{"bad url", func(c *Config) { c.BackendURL = "localhost" }, "BackendURL"},
		{"zero interval", func(c *Config) { c.PollInterval = 0 }, "PollInterval"},
		{"negative camera", func(c *Config) { c.Camera = -1 }, "Camera"},
		{"no port", func(c *Config) { c.Port = "" }, "Port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)

			err := cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, ce.Field)
			}
		})
	}
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 150, B: 100, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "face.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return path
}

func TestAppEndToEnd(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"running","model_loaded":true}`))
		case "/predict":
			w.Write([]byte(`{"emotion":"happy","confidence":87.3,"all_probabilities":{"happy":87.3,"neutral":12.7}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	cfg := DefaultConfig()
	cfg.BackendURL = backend.URL
	cfg.ImagePath = writePNG(t)
	cfg.PollInterval = 10 * time.Millisecond

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer app.Shutdown()

	srv := app.webServer
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodPost, "/api/session/start", nil))
	if err != nil {
		t.Fatalf("Start request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var st web.DisplayState
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st = srv.Surface().Snapshot()
		if st.Status == "Detected: happy (87.3%)" && len(st.Bars) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if st.Status != "Detected: happy (87.3%)" {
		t.Fatalf("Expected detection status, got %q", st.Status)
	}
	if len(st.Bars) != 2 || st.Bars[0].Label != "Happy" {
		t.Errorf("Unexpected bars %+v", st.Bars)
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodPost, "/api/session/stop", nil))
	if err != nil {
		t.Fatalf("Stop request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var state session.State
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Active {
		t.Error("Expected inactive after stop")
	}

	app.Controller().Wait()
	if got := srv.Surface().Snapshot().Status; got != session.StatusStopped {
		t.Errorf("Expected %q, got %q", session.StatusStopped, got)
	}
}
