// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tracer/scalar"
	"github.com/pthm-cable/tracer/trail"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Channel sources.
const (
	SourcePointer = "pointer"
	SourceWalker  = "walker"
)

// Config holds all viewer configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Background BackgroundConfig `yaml:"background"`
	Channels   []ChannelConfig  `yaml:"channels"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Camera     CameraConfig     `yaml:"camera"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// BackgroundConfig holds the clear colors of each view.
type BackgroundConfig struct {
	Trails  string `yaml:"trails"`
	Surface string `yaml:"surface"`
}

// ChannelConfig defines one particle channel and its attractor source.
type ChannelConfig struct {
	Name         string       `yaml:"name"`
	Source       string       `yaml:"source"` // pointer | walker
	Color        string       `yaml:"color"`
	InitialSize  float64      `yaml:"initial_size"`
	InitialAlpha int          `yaml:"initial_alpha"`
	DecayRate    int          `yaml:"decay_rate"` // alpha lost per frame
	Accel        float64      `yaml:"accel"`
	Friction     float64      `yaml:"friction"` // must be < 1
	Escape       string       `yaml:"escape"`   // left | left_top | none
	Drift        [2]float64   `yaml:"drift"`    // per-frame displacement
	Walker       WalkerConfig `yaml:"walker"`
}

// WalkerConfig holds random walk step distribution parameters.
type WalkerConfig struct {
	StepMean      float64 `yaml:"step_mean"`
	StepStdDev    float64 `yaml:"step_stddev"`
	HeadingStdDev float64 `yaml:"heading_stddev"`
}

// SurfaceConfig holds scalar surface sampling parameters.
type SurfaceConfig struct {
	Size          float64 `yaml:"size"` // domain half-width
	Resolution    int     `yaml:"resolution"`
	MinResolution int     `yaml:"min_resolution"`
	MaxResolution int     `yaml:"max_resolution"`
	Function      string  `yaml:"function"`
	ShowGradients bool    `yaml:"show_gradients"`
	ArrowColor    string  `yaml:"arrow_color"`
}

// CameraConfig holds orbit camera parameters for the surface view.
type CameraConfig struct {
	Radius      float64 `yaml:"radius"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	Pitch       float64 `yaml:"pitch"`
	Yaw         float64 `yaml:"yaw"`
	Fovy        float64 `yaml:"fovy"`
	RotateSpeed float64 `yaml:"rotate_speed"` // radians per pixel dragged
	ZoomStep    float64 `yaml:"zoom_step"`    // radius fraction per wheel notch
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
	PerfWindow   int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TrailsBackground  color.RGBA
	SurfaceBackground color.RGBA
	ArrowColor        color.RGBA
	ChannelColors     []color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. A channels list replaces the default list.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks invariants the simulation relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if len(c.Channels) == 0 {
		errs = append(errs, errors.New("at least one channel is required"))
	}
	pointers := 0
	for i, ch := range c.Channels {
		switch ch.Source {
		case SourcePointer:
			pointers++
		case SourceWalker:
		default:
			errs = append(errs, fmt.Errorf("channel %d (%s): unknown source %q", i, ch.Name, ch.Source))
		}
		if ch.Friction < 0 || ch.Friction >= 1 {
			errs = append(errs, fmt.Errorf("channel %d (%s): friction %v must be in [0, 1)", i, ch.Name, ch.Friction))
		}
		if ch.InitialAlpha <= 0 || ch.InitialAlpha > 255 {
			errs = append(errs, fmt.Errorf("channel %d (%s): initial_alpha %d must be in (0, 255]", i, ch.Name, ch.InitialAlpha))
		}
		if ch.DecayRate <= 0 {
			errs = append(errs, fmt.Errorf("channel %d (%s): decay_rate must be positive", i, ch.Name))
		}
		if ch.InitialSize <= 0 {
			errs = append(errs, fmt.Errorf("channel %d (%s): initial_size must be positive", i, ch.Name))
		}
		if _, err := trail.ParseEscape(ch.Escape); err != nil {
			errs = append(errs, fmt.Errorf("channel %d (%s): %w", i, ch.Name, err))
		}
	}
	if pointers > 1 {
		errs = append(errs, fmt.Errorf("%d pointer channels configured, at most one allowed", pointers))
	}

	s := c.Surface
	if s.MinResolution <= 0 || s.MinResolution > s.MaxResolution {
		errs = append(errs, fmt.Errorf("surface resolution bounds [%d, %d] invalid", s.MinResolution, s.MaxResolution))
	}
	if s.Resolution < s.MinResolution || s.Resolution > s.MaxResolution {
		errs = append(errs, fmt.Errorf("surface resolution %d outside [%d, %d]", s.Resolution, s.MinResolution, s.MaxResolution))
	}
	if s.Size <= 0 {
		errs = append(errs, errors.New("surface size must be positive"))
	}
	if _, _, ok := scalar.Lookup(s.Function); !ok {
		errs = append(errs, fmt.Errorf("surface function %q not in catalog %q", s.Function, scalar.Names()))
	}
	if c.Camera.MinRadius <= 0 || c.Camera.MinRadius > c.Camera.MaxRadius {
		errs = append(errs, fmt.Errorf("camera radius bounds [%v, %v] invalid", c.Camera.MinRadius, c.Camera.MaxRadius))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.TrailsBackground, err = ParseHexColor(c.Background.Trails); err != nil {
		return fmt.Errorf("background.trails: %w", err)
	}
	if c.Derived.SurfaceBackground, err = ParseHexColor(c.Background.Surface); err != nil {
		return fmt.Errorf("background.surface: %w", err)
	}
	if c.Derived.ArrowColor, err = ParseHexColor(c.Surface.ArrowColor); err != nil {
		return fmt.Errorf("surface.arrow_color: %w", err)
	}

	c.Derived.ChannelColors = make([]color.RGBA, len(c.Channels))
	for i, ch := range c.Channels {
		if c.Derived.ChannelColors[i], err = ParseHexColor(ch.Color); err != nil {
			return fmt.Errorf("channel %d (%s) color: %w", i, ch.Name, err)
		}
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
