// Package config holds the fixed parameters of the sketch analysis pipeline.
//
// A Config is a plain value. It is built once (defaults, then an optional
// YAML file, then environment overrides), validated, and passed to every
// pipeline call. Nothing in this package keeps package-level mutable state.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultMaxInputPixels admits a 50 megapixel photo of a sketch.
const DefaultMaxInputPixels = 50_000_000

// Binarization modes accepted by Preprocess.Binarization.
const (
	BinarizeAdaptive = "adaptive"
	BinarizeGlobal   = "global"
)

// Preprocess controls image cleanup before contour extraction.
type Preprocess struct {
	// MaxInputPixels bounds width*height of an encoded input. Larger
	// images are rejected before any pixel buffer is allocated.
	MaxInputPixels int `yaml:"max_input_pixels"`

	// MaxDimension caps the longer side; larger images are downscaled.
	MaxDimension int `yaml:"max_dimension"`

	// BlurKernelSize is the Gaussian kernel edge length. Must be odd.
	BlurKernelSize int `yaml:"blur_kernel_size"`

	// Binarization is "adaptive" (locally windowed) or "global".
	Binarization string `yaml:"binarization"`

	// AdaptiveBlockSize is the local window edge length. Must be odd.
	AdaptiveBlockSize int `yaml:"adaptive_block_size"`

	// AdaptiveC is subtracted from the local mean before comparison.
	AdaptiveC int `yaml:"adaptive_c"`

	// GlobalThreshold is the cutoff used in global mode (0-255).
	GlobalThreshold int `yaml:"global_threshold"`

	MorphKernelSize int `yaml:"morph_kernel_size"`
	CloseIterations int `yaml:"close_iterations"`
	OpenIterations  int `yaml:"open_iterations"`

	// CannyLow and CannyHigh are the hysteresis thresholds of the
	// diagnostic edge map (0-255).
	CannyLow  int `yaml:"canny_low"`
	CannyHigh int `yaml:"canny_high"`
}

// Detection controls which contours become candidate shapes.
type Detection struct {
	MinContourArea float64 `yaml:"min_contour_area"`
	MaxAreaRatio   float64 `yaml:"max_area_ratio"`
	ApproxEpsilon  float64 `yaml:"approx_epsilon"`
	MinCorners     int     `yaml:"min_corners"`
	MaxCorners     int     `yaml:"max_corners"`
}

// Classifier holds the ratio thresholds of the rule chain. The values are
// empirical defaults and are meant to be tuned.
type Classifier struct {
	NavbarMaxY     float64 `yaml:"navbar_max_y"`
	NavbarMinWidth float64 `yaml:"navbar_min_width"`

	HeroMaxY    float64 `yaml:"hero_max_y"`
	HeroMinArea float64 `yaml:"hero_min_area"`

	FooterMinY     float64 `yaml:"footer_min_y"`
	FooterMinWidth float64 `yaml:"footer_min_width"`

	SidebarMaxX      float64 `yaml:"sidebar_max_x"`
	SidebarMinHeight float64 `yaml:"sidebar_min_height"`
	SidebarMaxWidth  float64 `yaml:"sidebar_max_width"`

	ButtonMaxArea   float64 `yaml:"button_max_area"`
	ButtonMinAspect float64 `yaml:"button_min_aspect"`
	ButtonMaxAspect float64 `yaml:"button_max_aspect"`

	CardMaxArea   float64 `yaml:"card_max_area"`
	CardMinAspect float64 `yaml:"card_min_aspect"`
	CardMaxAspect float64 `yaml:"card_max_aspect"`
}

// Canvas is a target canvas size in canvas pixels.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the complete, immutable pipeline configuration.
type Config struct {
	Preprocess Preprocess        `yaml:"preprocess"`
	Detection  Detection         `yaml:"detection"`
	Classifier Classifier        `yaml:"classifier"`
	Canvas     Canvas            `yaml:"canvas"`
	Devices    map[string]Canvas `yaml:"devices"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Preprocess: Preprocess{
			MaxInputPixels:    DefaultMaxInputPixels,
			MaxDimension:      1200,
			BlurKernelSize:    5,
			Binarization:      BinarizeAdaptive,
			AdaptiveBlockSize: 11,
			AdaptiveC:         2,
			GlobalThreshold:   127,
			MorphKernelSize:   3,
			CloseIterations:   2,
			OpenIterations:    1,
			CannyLow:          50,
			CannyHigh:         150,
		},
		Detection: Detection{
			MinContourArea: 500,
			MaxAreaRatio:   0.95,
			ApproxEpsilon:  0.02,
			MinCorners:     3,
			MaxCorners:     8,
		},
		Classifier: Classifier{
			NavbarMaxY:       0.12,
			NavbarMinWidth:   0.70,
			HeroMaxY:         0.35,
			HeroMinArea:      0.15,
			FooterMinY:       0.85,
			FooterMinWidth:   0.70,
			SidebarMaxX:      0.30,
			SidebarMinHeight: 0.50,
			SidebarMaxWidth:  0.35,
			ButtonMaxArea:    0.03,
			ButtonMinAspect:  1.5,
			ButtonMaxAspect:  6.0,
			CardMaxArea:      0.15,
			CardMinAspect:    0.5,
			CardMaxAspect:    2.0,
		},
		Canvas: Canvas{Width: 1200, Height: 800},
		Devices: map[string]Canvas{
			"desktop": {Width: 1200, Height: 800},
			"macbook": {Width: 1440, Height: 900},
			"iphone":  {Width: 393, Height: 852},
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and SKETCH2WIRE_* environment variables, then validates it.
//
// Keys missing from the file keep their default values. Device presets in
// the file are merged over the built-in ones.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.mergeYAML(data); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(data []byte) error {
	devices := c.Devices
	c.Devices = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	merged := make(map[string]Canvas, len(devices)+len(c.Devices))
	for name, canvas := range devices {
		merged[name] = canvas
	}
	for name, canvas := range c.Devices {
		merged[name] = canvas
	}
	c.Devices = merged
	return nil
}

// Device returns the canvas registered under name.
func (c Config) Device(name string) (Canvas, error) {
	canvas, ok := c.Devices[name]
	if !ok {
		return Canvas{}, &ConfigError{Field: "device", Reason: fmt.Sprintf("unknown device %q (known: %v)", name, c.DeviceNames())}
	}
	return canvas, nil
}

// DeviceNames returns the registered device names in sorted order.
func (c Config) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for name := range c.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
