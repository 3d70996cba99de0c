// Package preprocess turns a decoded sketch into a clean binary mask.
//
// Run applies a fixed sequence of steps:
//
//  1. Downscale so the longer side does not exceed MaxDimension
//  2. Grayscale (BT.601 luma)
//  3. Gaussian blur to suppress paper texture and stroke grain
//  4. Binarization, adaptive (local Gaussian mean) by default so uneven
//     lighting in photographed sketches does not erase or merge strokes
//  5. Morphological close to bridge small gaps in outlines, then open to
//     remove isolated specks
//  6. Canny edge map of the blurred image, kept for diagnostics only
//
// A blank or featureless image is not an error; it simply produces an
// empty mask.
package preprocess

import (
	"image"

	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/imaging"
)

// Result holds every intermediate product of one preprocessing run. All
// images share the same (possibly downscaled) dimensions.
type Result struct {
	// Processed is the color image after resizing.
	Processed *image.NRGBA

	Gray    *image.Gray
	Blurred *image.Gray

	// Mask is the cleaned binary image: ink 255, paper 0.
	Mask *image.Gray

	// Edges is the diagnostic Canny edge map.
	Edges *image.Gray

	// Scale is the resize factor applied to the input (1.0 if unchanged).
	Scale float64

	Width  int
	Height int
}

// Run preprocesses raw with the given parameters.
//
// Returns *config.ConfigError if cfg is invalid. Any well-formed image,
// including an entirely blank one, succeeds.
func Run(raw *imaging.RawImage, cfg config.Preprocess) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	processed, scale := imaging.FitWithin(raw.Image, cfg.MaxDimension)
	gray := imaging.Grayscale(processed)
	blurred := imaging.GaussianBlur(gray, cfg.BlurKernelSize)

	var mask *image.Gray
	switch cfg.Binarization {
	case config.BinarizeGlobal:
		mask = imaging.GlobalThreshold(blurred, cfg.GlobalThreshold)
	default:
		mask = imaging.AdaptiveThreshold(blurred, cfg.AdaptiveBlockSize, cfg.AdaptiveC)
	}

	mask = imaging.Close(mask, cfg.MorphKernelSize, cfg.CloseIterations)
	mask = imaging.Open(mask, cfg.MorphKernelSize, cfg.OpenIterations)

	edges := imaging.Canny(blurred, cfg.CannyLow, cfg.CannyHigh)

	bounds := processed.Bounds()
	return &Result{
		Processed: processed,
		Gray:      gray,
		Blurred:   blurred,
		Mask:      mask,
		Edges:     edges,
		Scale:     scale,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}
