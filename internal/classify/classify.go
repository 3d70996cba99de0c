// Package classify assigns a semantic component type to a detected shape.
//
// Classification is a priority-ordered chain of rules over the shape's
// position and size relative to the image. The first rule whose
// predicate matches decides the type and confidence; a shape no rule
// claims falls back to a generic section.
//
// # Rule Chain
//
//  1. navbar: top band and wide (0.95 when nearly full width, else 0.90)
//  2. hero: upper region and large (0.85)
//  3. footer: bottom band and wide (0.85)
//  4. sidebar: left band, tall and narrow (0.80)
//  5. button: small and elongated (0.60)
//  6. card: moderate size, roughly square (0.65)
//  7. section: fallback (0.50)
//
// Thresholds come from config.Classifier and are empirical defaults.
// Confidence is a heuristic match strength, not a probability.
package classify

import (
	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/detection"
	"github.com/ironsheep/sketch2wire/internal/wireframe"
)

// fullWidthRatio is the width ratio above which a navbar is considered
// to span the page.
const fullWidthRatio = 0.9

// Features are the image-relative measurements rules are evaluated on.
type Features struct {
	XRatio      float64 `json:"x_ratio"`
	YRatio      float64 `json:"y_ratio"`
	WidthRatio  float64 `json:"width_ratio"`
	HeightRatio float64 `json:"height_ratio"`
	AreaRatio   float64 `json:"area_ratio"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// NewFeatures normalizes a shape against the image it was found in.
// AreaRatio uses the enclosed contour area, not the bounding box.
func NewFeatures(s detection.Shape, imageWidth, imageHeight int) Features {
	w := float64(max(imageWidth, 1))
	h := float64(max(imageHeight, 1))

	aspect := s.AspectRatio
	if aspect == 0 && s.Height > 0 {
		aspect = float64(s.Width) / float64(s.Height)
	}

	return Features{
		XRatio:      float64(s.X) / w,
		YRatio:      float64(s.Y) / h,
		WidthRatio:  float64(s.Width) / w,
		HeightRatio: float64(s.Height) / h,
		AreaRatio:   s.Area / (w * h),
		AspectRatio: aspect,
	}
}

// Rule is one predicate in the chain and the result it yields.
type Rule struct {
	Name       string
	Type       wireframe.ComponentType
	Confidence float64
	Match      func(Features) bool
}

// Decision is the outcome of classifying one shape.
type Decision struct {
	Type       wireframe.ComponentType `json:"type"`
	Confidence float64                 `json:"confidence"`
	Rule       string                  `json:"rule"`
	Features   Features                `json:"features"`
}

// Classifier evaluates the rule chain. It is immutable after New and safe
// for concurrent use.
type Classifier struct {
	rules    []Rule
	fallback Rule
}

// New builds the rule chain from cfg.
//
// Returns *config.ConfigError if a threshold is out of range.
func New(cfg config.Classifier) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		rules: buildRules(cfg),
		fallback: Rule{
			Name:       "section",
			Type:       wireframe.Section,
			Confidence: 0.50,
			Match:      func(Features) bool { return true },
		},
	}, nil
}

func buildRules(cfg config.Classifier) []Rule {
	return []Rule{
		{
			Name:       "navbar_full_width",
			Type:       wireframe.Navbar,
			Confidence: 0.95,
			Match: func(f Features) bool {
				return f.YRatio < cfg.NavbarMaxY && f.WidthRatio > cfg.NavbarMinWidth && f.WidthRatio > fullWidthRatio
			},
		},
		{
			Name:       "navbar",
			Type:       wireframe.Navbar,
			Confidence: 0.90,
			Match: func(f Features) bool {
				return f.YRatio < cfg.NavbarMaxY && f.WidthRatio > cfg.NavbarMinWidth
			},
		},
		{
			Name:       "hero",
			Type:       wireframe.Hero,
			Confidence: 0.85,
			Match: func(f Features) bool {
				return f.YRatio < cfg.HeroMaxY && f.AreaRatio > cfg.HeroMinArea
			},
		},
		{
			Name:       "footer",
			Type:       wireframe.Footer,
			Confidence: 0.85,
			Match: func(f Features) bool {
				return f.YRatio > cfg.FooterMinY && f.WidthRatio > cfg.FooterMinWidth
			},
		},
		{
			Name:       "sidebar",
			Type:       wireframe.Sidebar,
			Confidence: 0.80,
			Match: func(f Features) bool {
				return f.XRatio < cfg.SidebarMaxX && f.HeightRatio > cfg.SidebarMinHeight && f.WidthRatio < cfg.SidebarMaxWidth
			},
		},
		{
			Name:       "button",
			Type:       wireframe.Button,
			Confidence: 0.60,
			Match: func(f Features) bool {
				return f.AreaRatio < cfg.ButtonMaxArea && f.AspectRatio >= cfg.ButtonMinAspect && f.AspectRatio <= cfg.ButtonMaxAspect
			},
		},
		{
			Name:       "card",
			Type:       wireframe.Card,
			Confidence: 0.65,
			Match: func(f Features) bool {
				return f.AreaRatio < cfg.CardMaxArea && f.AspectRatio >= cfg.CardMinAspect && f.AspectRatio <= cfg.CardMaxAspect
			},
		},
	}
}

// Rules returns the chain in evaluation order, fallback last.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, 0, len(c.rules)+1)
	rules = append(rules, c.rules...)
	return append(rules, c.fallback)
}

// Classify returns the component type and confidence for s, found in an
// image of the given dimensions.
func (c *Classifier) Classify(s detection.Shape, imageWidth, imageHeight int) (wireframe.ComponentType, float64) {
	d := c.Explain(s, imageWidth, imageHeight)
	return d.Type, d.Confidence
}

// Explain is Classify plus the name of the rule that fired and the
// features it saw.
func (c *Classifier) Explain(s detection.Shape, imageWidth, imageHeight int) Decision {
	f := NewFeatures(s, imageWidth, imageHeight)
	rule := c.match(f)
	return Decision{
		Type:       rule.Type,
		Confidence: rule.Confidence,
		Rule:       rule.Name,
		Features:   f,
	}
}

func (c *Classifier) match(f Features) Rule {
	for _, r := range c.rules {
		if r.Match(f) {
			return r
		}
	}
	return c.fallback
}
