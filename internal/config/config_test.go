package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.TargetSize != 200.0 {
		t.Errorf("expected target size 200, got %f", cfg.Scene.TargetSize)
	}
	if cfg.Scene.MaxGridDim != 500 {
		t.Errorf("expected max grid dim 500, got %d", cfg.Scene.MaxGridDim)
	}
	if cfg.Scene.Exaggeration != 1.5 {
		t.Errorf("expected exaggeration 1.5, got %f", cfg.Scene.Exaggeration)
	}

	// The turn indicator must react faster than the camera heading.
	indicatorAlpha := 1 - cfg.Scene.TurnSmoothing
	if cfg.Scene.HeadingInertia >= indicatorAlpha {
		t.Errorf("heading inertia %f must be below indicator alpha %f",
			cfg.Scene.HeadingInertia, indicatorAlpha)
	}

	if cfg.Playback.Speed != 3.0 {
		t.Errorf("expected playback speed 3, got %f", cfg.Playback.Speed)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  target_size: 150
  max_grid_dim: 300
  exaggeration: 2.0
  turn_smoothing: 0.9
  heading_inertia: 0.05

playback:
  speed: 10

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync false after load")
	}
	if cfg.Scene.TargetSize != 150 {
		t.Errorf("expected target size 150, got %f", cfg.Scene.TargetSize)
	}
	if cfg.Scene.MaxGridDim != 300 {
		t.Errorf("expected max grid dim 300, got %d", cfg.Scene.MaxGridDim)
	}
	if cfg.Playback.Speed != 10 {
		t.Errorf("expected speed 10, got %f", cfg.Playback.Speed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Scene.PathLift != 0.5 {
		t.Errorf("expected default path lift 0.5, got %f", cfg.Scene.PathLift)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
