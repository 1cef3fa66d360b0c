// Package config loads CircleArt settings from TOML or YAML files
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/circle-art/constants"
	"github.com/lixenwraith/circle-art/terminal"
)

// Output backends
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// Config is the root of the configuration file
type Config struct {
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Scene  SceneConfig  `toml:"scene" yaml:"scene"`
}

// EngineConfig controls buffer size, pacing and output
type EngineConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`   // 0 = surface width
	Height    int    `toml:"height" yaml:"height"` // 0 = surface height
	FPS       int    `toml:"fps" yaml:"fps"`       // 0 = uncapped
	ShowFPS   bool   `toml:"show_fps" yaml:"show_fps"`
	ColorMode string `toml:"color_mode" yaml:"color_mode"`
	Backend   string `toml:"backend" yaml:"backend"` // tcell or ansi
	Glyph     string `toml:"glyph" yaml:"glyph"`
}

// SceneConfig tunes the CircleArt animation
type SceneConfig struct {
	Rings         int          `toml:"rings" yaml:"rings"`
	Period        float64      `toml:"period" yaml:"period"`
	Scale         float64      `toml:"scale" yaml:"scale"`
	PhaseStep     float64      `toml:"phase_step" yaml:"phase_step"`
	ColorDuration float64      `toml:"color_duration" yaml:"color_duration"`
	Background    string       `toml:"background" yaml:"background"`
	Duration      Duration     `toml:"duration" yaml:"duration"`
	Balls         []BallConfig `toml:"balls" yaml:"balls"`
}

// BallConfig describes one orbiting ball
type BallConfig struct {
	Period float64 `toml:"period" yaml:"period"`
	Scale  float64 `toml:"scale" yaml:"scale"`
	Offset float64 `toml:"offset" yaml:"offset"`
	Radius int     `toml:"radius" yaml:"radius"`
}

// Duration is a time.Duration written as a Go duration string ("1m30s")
type Duration time.Duration

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML parses a scalar duration node
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Title:     constants.DefaultTitle,
			FPS:       constants.DefaultFPS,
			ShowFPS:   true,
			ColorMode: constants.DefaultColorMode,
			Backend:   constants.DefaultBackend,
			Glyph:     constants.DefaultGlyph,
		},
		Scene: SceneConfig{
			Rings:         constants.DefaultRings,
			Period:        constants.DefaultPeriod,
			Scale:         constants.DefaultScale,
			PhaseStep:     constants.DefaultPhaseStep,
			ColorDuration: constants.DefaultColorDuration,
			Background:    terminal.ColorBlack.String(),
			Duration:      Duration(constants.DefaultDuration),
			Balls:         defaultBalls(),
		},
	}
}

func defaultBalls() []BallConfig {
	return []BallConfig{
		{Period: constants.DefaultBallPeriod, Scale: constants.DefaultBallScale, Offset: 0.06, Radius: 4},
		{Period: constants.DefaultBallPeriod, Scale: constants.DefaultBallScale, Offset: 0.00, Radius: 2},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// LoadOptional behaves like Load but returns the defaults when the file does not exist
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			def := Default()
			return &def, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext over the defaults and validates it
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	cfg.Scene.Balls = nil

	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if cfg.Scene.Balls == nil {
		cfg.Scene.Balls = defaultBalls()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field
func (c *Config) Validate() error {
	var errs []error

	e := c.Engine
	if e.Width < 0 || e.Height < 0 {
		errs = append(errs, fmt.Errorf("engine: dimensions must not be negative, got %dx%d", e.Width, e.Height))
	}
	if e.FPS < 0 {
		errs = append(errs, fmt.Errorf("engine: fps must not be negative, got %d", e.FPS))
	}
	if _, err := terminal.ParseGlyph(e.Glyph); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}
	if _, err := terminal.ParseColorMode(e.ColorMode); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}
	switch e.Backend {
	case BackendTcell, BackendANSI:
	default:
		errs = append(errs, fmt.Errorf("engine: unknown backend %q", e.Backend))
	}

	s := c.Scene
	if s.Rings < 0 {
		errs = append(errs, fmt.Errorf("scene: rings must not be negative, got %d", s.Rings))
	}
	if s.Period <= 0 {
		errs = append(errs, fmt.Errorf("scene: period must be positive, got %v", s.Period))
	}
	if s.ColorDuration <= 0 {
		errs = append(errs, fmt.Errorf("scene: color_duration must be positive, got %v", s.ColorDuration))
	}
	if _, ok := terminal.ParseColor(s.Background); !ok {
		errs = append(errs, fmt.Errorf("scene: unknown background color %q", s.Background))
	}
	if s.Duration < 0 {
		errs = append(errs, fmt.Errorf("scene: duration must not be negative, got %v", time.Duration(s.Duration)))
	}
	for i, b := range s.Balls {
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("scene: ball %d radius must not be negative, got %d", i, b.Radius))
		}
		if b.Period <= 0 {
			errs = append(errs, fmt.Errorf("scene: ball %d period must be positive, got %v", i, b.Period))
		}
	}

	return errors.Join(errs...)
}

// FrameInterval converts the fps cap into a loop interval
func (e EngineConfig) FrameInterval() time.Duration {
	if e.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(e.FPS)
}

// GlyphRune returns the configured glyph, falling back to a full block
func (e EngineConfig) GlyphRune() rune {
	r, err := terminal.ParseGlyph(e.Glyph)
	if err != nil {
		return terminal.GlyphFull
	}
	return r
}

// BackgroundColor returns the configured background palette entry
func (s SceneConfig) BackgroundColor() terminal.Color {
	c, _ := terminal.ParseColor(s.Background)
	return c
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return data, nil
}
