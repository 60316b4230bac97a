// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window" toml:"window"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Controls   ControlsConfig   `yaml:"controls" toml:"controls"`
	Transition TransitionConfig `yaml:"transition" toml:"transition"`
	Minimap    MinimapConfig    `yaml:"minimap" toml:"minimap"`
	Scene      SceneConfig      `yaml:"scene" toml:"scene"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit" toml:"fps_limit"`
}

// CameraConfig holds the main camera projection and starting pose.
type CameraConfig struct {
	FOV      float32    `yaml:"fov" toml:"fov"` // vertical, degrees
	Near     float32    `yaml:"near" toml:"near"`
	Far      float32    `yaml:"far" toml:"far"`
	Position [3]float32 `yaml:"position" toml:"position"`
	Target   [3]float32 `yaml:"target" toml:"target"`
}

// ControlsConfig holds manual orbit input settings.
type ControlsConfig struct {
	DampingFactor float32 `yaml:"damping_factor" toml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed" toml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed" toml:"zoom_speed"`
	PanSpeed      float32 `yaml:"pan_speed" toml:"pan_speed"`
	MinDistance   float32 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance" toml:"max_distance"`
	MaxPolarAngle float32 `yaml:"max_polar_angle" toml:"max_polar_angle"` // degrees from +Y
	EnablePan     bool    `yaml:"enable_pan" toml:"enable_pan"`
	InputPolicy   string  `yaml:"input_policy" toml:"input_policy"` // suppress or cancel
}

// TransitionConfig holds camera animation settings.
type TransitionConfig struct {
	DurationMS int     `yaml:"duration_ms" toml:"duration_ms"`
	Easing     string  `yaml:"easing" toml:"easing"`
	FitFactor  float32 `yaml:"fit_factor" toml:"fit_factor"`
}

// Duration returns the transition length.
func (t TransitionConfig) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// MinimapConfig holds the overhead view settings.
type MinimapConfig struct {
	Size        int        `yaml:"size" toml:"size"`     // square, pixels
	Margin      int        `yaml:"margin" toml:"margin"` // from the top-right corner
	Height      float32    `yaml:"height" toml:"height"`
	FOV         float32    `yaml:"fov" toml:"fov"`
	Near        float32    `yaml:"near" toml:"near"`
	Far         float32    `yaml:"far" toml:"far"`
	Up          [3]float32 `yaml:"up" toml:"up"`
	FocusOffset [3]float32 `yaml:"focus_offset" toml:"focus_offset"`
	GroundY     float32    `yaml:"ground_y" toml:"ground_y"`
}

// SceneConfig holds the scene manifest location.
type SceneConfig struct {
	Path  string `yaml:"path" toml:"path"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			FOV:      45,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{1.37, 7.33, 10.45},
		},
		Controls: ControlsConfig{
			DampingFactor: 0.05,
			RotateSpeed:   0.005,
			ZoomSpeed:     0.1,
			PanSpeed:      0.001,
			MinDistance:   5,
			MaxDistance:   15,
			MaxPolarAngle: 90,
			EnablePan:     false,
			InputPolicy:   "suppress",
		},
		Transition: TransitionConfig{
			DurationMS: 1000,
			Easing:     "quadratic-out",
			FitFactor:  1.5,
		},
		Minimap: MinimapConfig{
			Size:        200,
			Margin:      10,
			Height:      10,
			FOV:         45,
			Near:        0.1,
			Far:         100,
			Up:          [3]float32{0, 0, -1},
			FocusOffset: [3]float32{0, 5, 5},
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
