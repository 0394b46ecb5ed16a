// emocam - live facial emotion detection from a local camera.
// Frames are sent to a classification backend once per interval and the
// result is shown on a web dashboard.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-emocam/pkg/emocam"
)

func main() {
	cfg := parseFlags()

	app, err := emocam.New(cfg)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
// Environment variables supply the defaults; flags override them.
func parseFlags() emocam.Config {
	cfg := emocam.DefaultConfig()
	cfg.LoadEnvConfig()

	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "Classification backend base URL (EMOCAM_BACKEND_URL)")
	flag.IntVar(&cfg.Camera, "camera", cfg.Camera, "Camera device index (EMOCAM_CAMERA)")
	flag.StringVar(&cfg.ImagePath, "image", "", "Use a still JPEG/PNG instead of a camera")
	flag.DurationVar(&cfg.PollInterval, "interval", cfg.PollInterval, "Poll interval (EMOCAM_POLL_INTERVAL)")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Backend request timeout")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Dashboard port (EMOCAM_PORT)")
	flag.StringVar(&cfg.WebDir, "web-dir", cfg.WebDir, "Static files served at / (EMOCAM_WEB_DIR)")
	flag.Parse()

	return cfg
}
