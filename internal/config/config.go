package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/spf13/viper"
)

// FileName is the config file searched for in the config directory
const FileName = "findflaw.cfg.json"

// Config is the complete application configuration
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogsDir  string `mapstructure:"logsDir"`

	Navigation NavigationConfig `mapstructure:"navigation"`
	Highlight  HighlightConfig  `mapstructure:"highlight"`
	Focus      FocusConfig      `mapstructure:"focus"`
	Marker     MarkerConfig     `mapstructure:"marker"`
	Window     WindowConfig     `mapstructure:"window"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Archive    ArchiveConfig    `mapstructure:"archive"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// NavigationConfig holds on-screen button step sizes
type NavigationConfig struct {
	PanStep float64 `mapstructure:"panStep"`
	FovStep float64 `mapstructure:"fovStep"`
}

// HighlightConfig tunes the press-and-hold sphere
type HighlightConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	Growth     float64       `mapstructure:"growth"`
	MaxRadius  float64       `mapstructure:"maxRadius"`
	BaseRadius float64       `mapstructure:"baseRadius"`
}

// FocusConfig tunes the camera transition to a marker
type FocusConfig struct {
	Duration     time.Duration `mapstructure:"duration"`
	Acceleration float64       `mapstructure:"acceleration"`
	Deceleration float64       `mapstructure:"deceleration"`
}

// MarkerConfig holds the colour of new markers as #RRGGBB or #AARRGGBB
type MarkerConfig struct {
	Color string `mapstructure:"color"`
}

// WindowConfig holds the viewer window settings
type WindowConfig struct {
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	FPS         int    `mapstructure:"fps"`
	InitialView string `mapstructure:"initialView"` // top or bottom
	ModelColor  int    `mapstructure:"modelColor"`
}

// WatchConfig controls automatic reloading of changed files
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// ArchiveConfig selects the line-set archive database
type ArchiveConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "")

	v.SetDefault("navigation.panStep", 0.05)
	v.SetDefault("navigation.fovStep", 0.5)

	v.SetDefault("highlight.interval", 10*time.Millisecond)
	v.SetDefault("highlight.growth", 0.2)
	v.SetDefault("highlight.maxRadius", 100.0)
	v.SetDefault("highlight.baseRadius", 0.5)

	v.SetDefault("focus.duration", 400*time.Millisecond)
	v.SetDefault("focus.acceleration", 0.3)
	v.SetDefault("focus.deceleration", 0.3)

	v.SetDefault("marker.color", "#FF0000")

	v.SetDefault("window.width", 1400)
	v.SetDefault("window.height", 900)
	v.SetDefault("window.fps", 60)
	v.SetDefault("window.initialView", "top")
	v.SetDefault("window.modelColor", 0)

	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.debounce", 500*time.Millisecond)

	v.SetDefault("archive.driver", "sqlite")
	v.SetDefault("archive.dsn", "findflaw.db")
}

// Defaults returns the configuration used when no file exists
func Defaults() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults always decode
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FINDFLAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads findflaw.cfg.json from configDir on top of the defaults.
// A missing file is not an error; File stays empty in that case.
func Load(configDir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// Validate checks values that would break the viewer
func (c *Config) Validate() error {
	if c.Highlight.Interval <= 0 {
		return fmt.Errorf("highlight.interval must be positive, got %s", c.Highlight.Interval)
	}
	if c.Highlight.BaseRadius <= 0 {
		return fmt.Errorf("highlight.baseRadius must be positive, got %g", c.Highlight.BaseRadius)
	}
	if a, d := c.Focus.Acceleration, c.Focus.Deceleration; a < 0 || d < 0 || a+d > 1 {
		return fmt.Errorf("focus acceleration + deceleration must be within [0,1], got %g + %g", a, d)
	}
	if v := strings.ToLower(c.Window.InitialView); v != "top" && v != "bottom" {
		return fmt.Errorf("window.initialView must be top or bottom, got %q", c.Window.InitialView)
	}
	if _, err := ParseColor(c.Marker.Color); err != nil {
		return fmt.Errorf("marker.color: %w", err)
	}
	return nil
}

// TopView reports whether the initial view looks down from +Z
func (c *Config) TopView() bool {
	return strings.EqualFold(c.Window.InitialView, "top")
}

// MarkerColor returns the parsed marker colour
func (c *Config) MarkerColor() geometry.Color {
	col, err := ParseColor(c.Marker.Color)
	if err != nil {
		return geometry.Red
	}
	return col
}

// ParseColor reads #RRGGBB or #AARRGGBB
func ParseColor(s string) (geometry.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return geometry.Color{}, fmt.Errorf("invalid colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return geometry.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		n |= 0xFF000000
	}
	return geometry.ColorFromARGB(int32(uint32(n))), nil
}
