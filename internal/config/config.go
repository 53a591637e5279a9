package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"MisPaint/internal/paint"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up when no path is given.
const DefaultFile = "mispaint.yaml"

// ErrInvalid is returned for a config file that parses but holds values the
// painter cannot use.
var ErrInvalid = errors.New("invalid config")

// Config represents the optional mispaint.yaml configuration.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Brush  BrushConfig  `yaml:"brush"`
	Eraser EraserConfig `yaml:"eraser"`
	Share  ShareConfig  `yaml:"share"`
	Log    LogConfig    `yaml:"log"`
}

// CanvasConfig is the initial window content size.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrushConfig is the initial brush slot. Opacity is a percentage.
type BrushConfig struct {
	Color   string  `yaml:"color"`
	Width   float64 `yaml:"width"`
	Opacity float64 `yaml:"opacity"`
}

// EraserConfig is the initial eraser slot.
type EraserConfig struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

// ShareConfig controls LAN mirroring when hosting.
type ShareConfig struct {
	Port      int  `yaml:"port"`
	Advertise bool `yaml:"advertise"`
}

// LogConfig sets the verbosity: "info" or "debug".
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 1000, Height: 700},
		Brush: BrushConfig{
			Color:   paint.Hex(paint.DefaultBrush.Color),
			Width:   paint.DefaultBrush.Width,
			Opacity: 100,
		},
		Eraser: EraserConfig{
			Color: paint.Hex(paint.DefaultEraser.Color),
			Width: paint.DefaultEraser.Width,
		},
		Share: ShareConfig{Port: 8888, Advertise: true},
		Log:   LogConfig{Level: "info"},
	}
}

// LoadOptional reads the config at path if present. Keys missing from the
// file keep their default values.
func LoadOptional(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value that can be checked without resolving it.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Brush.Opacity < 0 || c.Brush.Opacity > 100 {
		return fmt.Errorf("%w: brush.opacity %v is not a percentage", ErrInvalid, c.Brush.Opacity)
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: share.port %d", ErrInvalid, c.Share.Port)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "info", "debug":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	_, err := c.Styles()
	return err
}

// Styles resolves the brush and eraser slots.
func (c *Config) Styles() (paint.Styles, error) {
	var s paint.Styles

	brush, err := paint.ParseColor(c.Brush.Color)
	if err != nil {
		return s, fmt.Errorf("%w: brush.color: %w", ErrInvalid, err)
	}
	if c.Brush.Width <= 0 {
		return s, fmt.Errorf("%w: brush.width %v", ErrInvalid, c.Brush.Width)
	}
	brush.A = paint.OpacityByte(c.Brush.Opacity)

	eraser, err := paint.ParseColor(c.Eraser.Color)
	if err != nil {
		return s, fmt.Errorf("%w: eraser.color: %w", ErrInvalid, err)
	}
	if c.Eraser.Width <= 0 {
		return s, fmt.Errorf("%w: eraser.width %v", ErrInvalid, c.Eraser.Width)
	}

	s.Brush = paint.Style{Color: brush, Width: c.Brush.Width}
	s.Eraser = paint.Style{Color: eraser, Width: c.Eraser.Width}
	return s, nil
}

// Debug reports whether engine debug logging is requested.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.Log.Level, "debug")
}
