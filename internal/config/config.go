package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SliceEntry describes one wedge of the wheel.
// Kind selects the content variant: "text", "image" or "line".
type SliceEntry struct {
	Kind     string `yaml:"kind"`
	Label    string `yaml:"label"`     // text slices
	ImageRef string `yaml:"image_ref"` // image slices: path to a picture
	TextMode string `yaml:"text_mode"` // "auto" (default), "curved", "horizontal"
}

// WheelConfig holds the wheel geometry.
type WheelConfig struct {
	Slices        []SliceEntry `yaml:"slices"`
	StartPosition string       `yaml:"start_position"` // "top", "right", "bottom", "left"
}

// AnimationConfig contains the animation timing defaults.
type AnimationConfig struct {
	RotateMs       int     `yaml:"rotate_ms"`       // short reposition tween
	SpinMs         int     `yaml:"spin_ms"`         // full spin
	FullRotations  int     `yaml:"full_rotations"`  // extra turns for a spin
	ContinuousRate float64 `yaml:"continuous_rate"` // rotations per second
	DecelerationMs int     `yaml:"deceleration_ms"` // landing tween after continuous rotation
	TickMs         int     `yaml:"tick_ms"`         // scheduler interval
}

// CollisionConfig enables the collision detectors.
type CollisionConfig struct {
	DetectEdges   bool    `yaml:"detect_edges"`
	DetectCenters bool    `yaml:"detect_centers"`
	EdgeWindow    float64 `yaml:"edge_window"`   // fraction of a slice, default 0.05
	CenterWindow  float64 `yaml:"center_window"` // fraction around the center, default 0.05
}

// ProviderConfig describes where the winning index comes from.
// Type selects a concrete implementation ("fixed" or "random").
type ProviderConfig struct {
	Type       string `yaml:"type"`
	FixedIndex int    `yaml:"fixed_index"` // for type "fixed"
	Seed       int64  `yaml:"seed"`        // for type "random"; 0 = non-deterministic
	DelayMs    int    `yaml:"delay_ms"`    // simulated backend latency
}

// RenderConfig parameterizes the reference surface and the GIF output.
type RenderConfig struct {
	SizePx   int `yaml:"size_px"`
	FPS      int `yaml:"fps"`
	LingerMs int `yaml:"linger_ms"` // still frames appended after landing
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel int `yaml:"debug_level"` // 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
}

// Config aggregates all application configuration.
type Config struct {
	Wheel     WheelConfig     `yaml:"wheel"`
	Animation AnimationConfig `yaml:"animation"`
	Collision CollisionConfig `yaml:"collision"`
	Provider  ProviderConfig  `yaml:"provider"`
	Render    RenderConfig    `yaml:"render"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

// ValidateConfigPath checks that a config path points into a configs/
// directory and carries the .yaml extension, rejecting traversal.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if filepath.Ext(path) != ".yaml" {
		return fmt.Errorf("config file must have a .yaml extension: %s", path)
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if filepath.Base(filepath.Dir(abs)) != "configs" {
		return fmt.Errorf("config file must live in a configs/ directory: %s", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	if len(cfg.Wheel.Slices) < 1 {
		return nil, fmt.Errorf("wheel.slices must contain at least one slice")
	}
	for i, s := range cfg.Wheel.Slices {
		switch s.Kind {
		case "", "text", "image", "line":
		default:
			return nil, fmt.Errorf("wheel.slices[%d].kind %q is not one of text, image, line", i, s.Kind)
		}
	}
	if cfg.Wheel.StartPosition == "" {
		cfg.Wheel.StartPosition = "top"
	}
	switch cfg.Wheel.StartPosition {
	case "top", "right", "bottom", "left":
	default:
		return nil, fmt.Errorf("wheel.start_position %q is not one of top, right, bottom, left", cfg.Wheel.StartPosition)
	}

	if cfg.Animation.RotateMs <= 0 {
		cfg.Animation.RotateMs = 300
	}
	if cfg.Animation.SpinMs <= 0 {
		cfg.Animation.SpinMs = 5000
	}
	if cfg.Animation.FullRotations <= 0 {
		cfg.Animation.FullRotations = 5
	}
	if cfg.Animation.ContinuousRate <= 0 {
		cfg.Animation.ContinuousRate = 1.0
	}
	if cfg.Animation.DecelerationMs <= 0 {
		cfg.Animation.DecelerationMs = 3000
	}
	if cfg.Animation.TickMs <= 0 {
		cfg.Animation.TickMs = 16
	}

	if cfg.Collision.EdgeWindow == 0 {
		cfg.Collision.EdgeWindow = 0.05
	}
	if cfg.Collision.CenterWindow == 0 {
		cfg.Collision.CenterWindow = 0.05
	}
	if cfg.Collision.EdgeWindow < 0 || cfg.Collision.EdgeWindow >= 0.5 {
		return nil, fmt.Errorf("collision.edge_window must be in (0, 0.5), got %g", cfg.Collision.EdgeWindow)
	}
	if cfg.Collision.CenterWindow < 0 || cfg.Collision.CenterWindow >= 0.5 {
		return nil, fmt.Errorf("collision.center_window must be in (0, 0.5), got %g", cfg.Collision.CenterWindow)
	}

	if cfg.Provider.Type == "" {
		cfg.Provider.Type = "random"
	}
	switch cfg.Provider.Type {
	case "fixed":
		if cfg.Provider.FixedIndex < 0 || cfg.Provider.FixedIndex >= len(cfg.Wheel.Slices) {
			return nil, fmt.Errorf("provider.fixed_index %d out of range [0, %d)",
				cfg.Provider.FixedIndex, len(cfg.Wheel.Slices))
		}
	case "random":
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider.Type)
	}

	if cfg.Render.SizePx <= 0 {
		cfg.Render.SizePx = 400
	}
	if cfg.Render.FPS <= 0 {
		cfg.Render.FPS = 25
	}
	if cfg.Render.FPS > 100 {
		return nil, fmt.Errorf("render.fps must be <= 100, got %d", cfg.Render.FPS)
	}
	if cfg.Render.LingerMs < 0 {
		return nil, fmt.Errorf("render.linger_ms must be >= 0, got %d", cfg.Render.LingerMs)
	}

	return &cfg, nil
}

// SliceCount returns the number of configured slices.
func (c *Config) SliceCount() int {
	return len(c.Wheel.Slices)
}

// RotateDuration returns the short reposition tween duration.
func (c *Config) RotateDuration() time.Duration {
	return time.Duration(c.Animation.RotateMs) * time.Millisecond
}

// SpinDuration returns the full spin duration.
func (c *Config) SpinDuration() time.Duration {
	return time.Duration(c.Animation.SpinMs) * time.Millisecond
}

// Deceleration returns the landing tween duration used after a
// continuous rotation.
func (c *Config) Deceleration() time.Duration {
	return time.Duration(c.Animation.DecelerationMs) * time.Millisecond
}

// TickInterval returns the scheduler tick interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Animation.TickMs) * time.Millisecond
}

// ProviderDelay returns the simulated provider latency.
func (c *Config) ProviderDelay() time.Duration {
	return time.Duration(c.Provider.DelayMs) * time.Millisecond
}

// Linger returns how long the landed wheel stays on screen in the GIF.
func (c *Config) Linger() time.Duration {
	return time.Duration(c.Render.LingerMs) * time.Millisecond
}
