package config

import "fmt"

// ConfigError reports an invalid configuration parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if err := c.Preprocess.Validate(); err != nil {
		return err
	}
	if err := c.Detection.Validate(); err != nil {
		return err
	}
	if err := c.Classifier.Validate(); err != nil {
		return err
	}
	if err := c.Canvas.Validate("canvas"); err != nil {
		return err
	}
	for name, canvas := range c.Devices {
		if err := canvas.Validate("devices." + name); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the preprocessing parameters.
func (p Preprocess) Validate() error {
	if p.MaxInputPixels <= 0 {
		return &ConfigError{Field: "preprocess.max_input_pixels", Reason: "must be positive"}
	}
	if p.MaxDimension <= 0 {
		return &ConfigError{Field: "preprocess.max_dimension", Reason: "must be positive"}
	}
	if err := oddPositive("preprocess.blur_kernel_size", p.BlurKernelSize, 1); err != nil {
		return err
	}
	switch p.Binarization {
	case BinarizeAdaptive:
		if err := oddPositive("preprocess.adaptive_block_size", p.AdaptiveBlockSize, 3); err != nil {
			return err
		}
		if p.AdaptiveC < 0 || p.AdaptiveC > 255 {
			return &ConfigError{Field: "preprocess.adaptive_c", Reason: "must be within 0..255"}
		}
	case BinarizeGlobal:
		if p.GlobalThreshold < 0 || p.GlobalThreshold > 255 {
			return &ConfigError{Field: "preprocess.global_threshold", Reason: "must be within 0..255"}
		}
	default:
		return &ConfigError{Field: "preprocess.binarization", Reason: fmt.Sprintf("unknown mode %q", p.Binarization)}
	}
	if err := oddPositive("preprocess.morph_kernel_size", p.MorphKernelSize, 1); err != nil {
		return err
	}
	if p.CloseIterations < 0 {
		return &ConfigError{Field: "preprocess.close_iterations", Reason: "must not be negative"}
	}
	if p.OpenIterations < 0 {
		return &ConfigError{Field: "preprocess.open_iterations", Reason: "must not be negative"}
	}
	if p.CannyLow < 0 || p.CannyLow > 255 {
		return &ConfigError{Field: "preprocess.canny_low", Reason: "must be within 0..255"}
	}
	if p.CannyHigh < 0 || p.CannyHigh > 255 {
		return &ConfigError{Field: "preprocess.canny_high", Reason: "must be within 0..255"}
	}
	if p.CannyLow > p.CannyHigh {
		return &ConfigError{Field: "preprocess.canny_low", Reason: "must not exceed canny_high"}
	}
	return nil
}

// Validate checks the contour filtering parameters.
func (d Detection) Validate() error {
	if d.MinContourArea < 0 {
		return &ConfigError{Field: "detection.min_contour_area", Reason: "must not be negative"}
	}
	if err := ratio("detection.max_area_ratio", d.MaxAreaRatio); err != nil {
		return err
	}
	if err := ratio("detection.approx_epsilon", d.ApproxEpsilon); err != nil {
		return err
	}
	if d.MinCorners < 1 {
		return &ConfigError{Field: "detection.min_corners", Reason: "must be at least 1"}
	}
	if d.MinCorners > d.MaxCorners {
		return &ConfigError{Field: "detection.min_corners", Reason: "must not exceed max_corners"}
	}
	return nil
}

// Validate checks that every classifier threshold is a usable ratio.
func (c Classifier) Validate() error {
	ratios := []struct {
		field string
		value float64
	}{
		{"classifier.navbar_max_y", c.NavbarMaxY},
		{"classifier.navbar_min_width", c.NavbarMinWidth},
		{"classifier.hero_max_y", c.HeroMaxY},
		{"classifier.hero_min_area", c.HeroMinArea},
		{"classifier.footer_min_y", c.FooterMinY},
		{"classifier.footer_min_width", c.FooterMinWidth},
		{"classifier.sidebar_max_x", c.SidebarMaxX},
		{"classifier.sidebar_min_height", c.SidebarMinHeight},
		{"classifier.sidebar_max_width", c.SidebarMaxWidth},
		{"classifier.button_max_area", c.ButtonMaxArea},
		{"classifier.card_max_area", c.CardMaxArea},
	}
	for _, r := range ratios {
		if err := ratio(r.field, r.value); err != nil {
			return err
		}
	}
	if c.ButtonMinAspect <= 0 || c.ButtonMinAspect > c.ButtonMaxAspect {
		return &ConfigError{Field: "classifier.button_min_aspect", Reason: "must be positive and not exceed button_max_aspect"}
	}
	if c.CardMinAspect <= 0 || c.CardMinAspect > c.CardMaxAspect {
		return &ConfigError{Field: "classifier.card_min_aspect", Reason: "must be positive and not exceed card_max_aspect"}
	}
	return nil
}

// Validate checks that both canvas dimensions are positive.
func (c Canvas) Validate(field string) error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", c.Width, c.Height)}
	}
	return nil
}

func oddPositive(field string, v, min int) error {
	if v < min {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be at least %d, got %d", min, v)}
	}
	if v%2 == 0 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be odd, got %d", v)}
	}
	return nil
}

func ratio(field string, v float64) error {
	if v <= 0 || v > 1 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be within (0, 1], got %g", v)}
	}
	return nil
}
