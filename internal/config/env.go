package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKETCH2WIRE_"

// applyEnv overrides the most commonly tuned parameters from the
// environment. Unset or empty variables leave the value untouched.
func applyEnv(c *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MAX_INPUT_PIXELS", &c.Preprocess.MaxInputPixels},
		{"MAX_DIMENSION", &c.Preprocess.MaxDimension},
		{"BLUR_KERNEL_SIZE", &c.Preprocess.BlurKernelSize},
		{"ADAPTIVE_BLOCK_SIZE", &c.Preprocess.AdaptiveBlockSize},
		{"ADAPTIVE_C", &c.Preprocess.AdaptiveC},
		{"GLOBAL_THRESHOLD", &c.Preprocess.GlobalThreshold},
		{"MORPH_KERNEL_SIZE", &c.Preprocess.MorphKernelSize},
		{"CANNY_LOW", &c.Preprocess.CannyLow},
		{"CANNY_HIGH", &c.Preprocess.CannyHigh},
		{"CANVAS_WIDTH", &c.Canvas.Width},
		{"CANVAS_HEIGHT", &c.Canvas.Height},
	}
	for _, e := range ints {
		val := os.Getenv(EnvPrefix + e.key)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return &ConfigError{Field: EnvPrefix + e.key, Reason: fmt.Sprintf("not an integer: %q", val)}
		}
		*e.dst = n
	}

	if val := os.Getenv(EnvPrefix + "MIN_CONTOUR_AREA"); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return &ConfigError{Field: EnvPrefix + "MIN_CONTOUR_AREA", Reason: fmt.Sprintf("not a number: %q", val)}
		}
		c.Detection.MinContourArea = f
	}

	if val := os.Getenv(EnvPrefix + "BINARIZATION"); val != "" {
		c.Preprocess.Binarization = val
	}
	return nil
}
