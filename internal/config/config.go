// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig holds terrain and camera tuning.
type SceneConfig struct {
	// TargetSize is the edge length of the cube the scene is scaled into.
	TargetSize float32 `yaml:"target_size"`
	// MaxGridDim caps the larger dimension of the downsampled elevation grid.
	MaxGridDim int `yaml:"max_grid_dim"`
	// Exaggeration is the vertical exaggeration baked into the mesh.
	Exaggeration float32 `yaml:"exaggeration"`
	// PathLift raises the track above the terrain, in scene units.
	PathLift float32 `yaml:"path_lift"`
	// TurnSmoothing is the EMA retention factor for the turn indicator.
	// Higher = smoother but slower to react.
	TurnSmoothing float32 `yaml:"turn_smoothing"`
	// HeadingInertia is the EMA blend-in factor for the camera forward
	// direction. Lower = more inertia. Must stay well below
	// 1-TurnSmoothing so the indicator reacts before the camera.
	HeadingInertia float32 `yaml:"heading_inertia"`
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	// Speed is the initial playback speed multiplier.
	Speed float32 `yaml:"speed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			TargetSize:     200.0,
			MaxGridDim:     500,
			Exaggeration:   1.5,
			PathLift:       0.5,
			TurnSmoothing:  0.92,
			HeadingInertia: 0.02,
		},
		Playback: PlaybackConfig{
			Speed: 3.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
