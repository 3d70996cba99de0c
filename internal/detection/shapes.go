package detection

import (
	"fmt"
	"image"

	"github.com/ironsheep/sketch2wire/internal/config"
)

// Shape is a candidate UI element found in a binary mask.
//
// The bounding box is in image pixel coordinates of the mask that was
// analysed; X and Y are the top-left pixel and Width/Height count pixels
// inclusively, so a one-pixel shape is 1x1.
type Shape struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is the area enclosed by the outer contour in square pixels.
	Area float64 `json:"area"`

	// Perimeter is the contour length in pixels.
	Perimeter float64 `json:"perimeter"`

	// Corners is the vertex count of the simplified polygon.
	Corners int `json:"corners"`

	// AspectRatio is Width / Height.
	AspectRatio float64 `json:"aspect_ratio"`
}

// Rect returns the bounding box as an image.Rectangle (Max exclusive).
func (s Shape) Rect() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
}

// DetectShapes extracts candidate shapes from a binary mask.
//
// Parameters:
//   - mask: Binary image where non-zero pixels are foreground (ink).
//   - cfg: Contour filtering parameters.
//
// Returns:
//   - []Shape: Accepted shapes in raster order of each region's
//     topmost-leftmost pixel. Empty (not nil) when nothing qualifies.
//   - error: *config.ConfigError for invalid parameters, or a backend failure.
//
// # Algorithm
//
//  1. Contour Finding: trace the outer border of every foreground region
//     that is not nested inside another region
//  2. Noise Filter: drop contours enclosing less than MinContourArea
//  3. Frame Filter: drop contours enclosing more than MaxAreaRatio of the
//     image (typically the paper or photo border)
//  4. Polygon Check: simplify with tolerance ApproxEpsilon x perimeter and
//     keep shapes with MinCorners..MaxCorners vertices
//
// # Limitations
//
//   - Shapes drawn inside other closed shapes are not reported
//   - Touching outlines merge into one region and one bounding box
func DetectShapes(mask *image.Gray, cfg config.Detection) ([]Shape, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	contours, err := findExternalContours(mask)
	if err != nil {
		return nil, fmt.Errorf("failed to extract contours: %w", err)
	}

	bounds := mask.Bounds()
	imageArea := float64(bounds.Dx() * bounds.Dy())
	shapes := make([]Shape, 0, len(contours))

	for _, contour := range contours {
		shape, ok := measure(contour, cfg, imageArea)
		if ok {
			shapes = append(shapes, shape)
		}
	}
	return shapes, nil
}

// measure computes the geometry of one contour and applies the filters.
func measure(contour Contour, cfg config.Detection, imageArea float64) (Shape, bool) {
	area := contour.Area()
	if area < cfg.MinContourArea || area <= 0 {
		return Shape{}, false
	}
	if area > imageArea*cfg.MaxAreaRatio {
		return Shape{}, false
	}

	perimeter := contour.Perimeter()
	corners := len(contour.Approximate(cfg.ApproxEpsilon * perimeter))
	if corners < cfg.MinCorners || corners > cfg.MaxCorners {
		return Shape{}, false
	}

	x, y, w, h := contour.BoundingBox()
	return Shape{
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		Area:        area,
		Perimeter:   perimeter,
		Corners:     corners,
		AspectRatio: float64(w) / float64(h),
	}, true
}
