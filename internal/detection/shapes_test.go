package detection

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/ironsheep/sketch2wire/internal/config"
)

// newMask creates an all-background mask.
func newMask(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// fillRect sets the inclusive rectangle (x1,y1)-(x2,y2) to foreground.
func fillRect(mask *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			mask.Pix[y*mask.Stride+x] = 255
		}
	}
}

// strokeRect draws the inclusive rectangle (x1,y1)-(x2,y2) as an outline
// of the given stroke width.
func strokeRect(mask *image.Gray, x1, y1, x2, y2, stroke int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if x < x1+stroke || x > x2-stroke || y < y1+stroke || y > y2-stroke {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
}

func TestDetectShapes_Outline(t *testing.T) {
	mask := newMask(200, 150)
	strokeRect(mask, 20, 20, 119, 79, 3)

	shapes, err := DetectShapes(mask, config.Default().Detection)
	if err != nil {
		t.Fatalf("DetectShapes failed: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}

	s := shapes[0]
	if s.X != 20 || s.Y != 20 || s.Width != 100 || s.Height != 60 {
		t.Errorf("box: got (%d,%d,%d,%d), want (20,20,100,60)", s.X, s.Y, s.Width, s.Height)
	}
	if s.Area != 99*59 {
		t.Errorf("area: got %f, want %d", s.Area, 99*59)
	}
	if s.Corners != 4 {
		t.Errorf("corners: got %d, want 4", s.Corners)
	}
	if math.Abs(s.AspectRatio-100.0/60.0) > 1e-9 {
		t.Errorf("aspect ratio: got %f, want %f", s.AspectRatio, 100.0/60.0)
	}
	if s.Rect() != image.Rect(20, 20, 120, 80) {
		t.Errorf("Rect(): got %v", s.Rect())
	}
}

func TestDetectShapes_Filters(t *testing.T) {
	tests := []struct {
		name  string
		draw  func(*image.Gray)
		count int
	}{
		{
			name:  "blank",
			draw:  func(*image.Gray) {},
			count: 0,
		},
		{
			name:  "small speck below area floor",
			draw:  func(m *image.Gray) { fillRect(m, 50, 50, 59, 59) },
			count: 0,
		},
		{
			name:  "thin line has no area",
			draw:  func(m *image.Gray) { fillRect(m, 10, 10, 180, 10) },
			count: 0,
		},
		{
			name:  "image border frame is rejected",
			draw:  func(m *image.Gray) { strokeRect(m, 0, 0, 199, 149, 3) },
			count: 0,
		},
		{
			name: "shapes inside the frame are nested",
			draw: func(m *image.Gray) {
				strokeRect(m, 0, 0, 199, 149, 3)
				strokeRect(m, 30, 30, 129, 99, 3)
			},
			count: 0,
		},
		{
			name: "nested box reports only the outer one",
			draw: func(m *image.Gray) {
				strokeRect(m, 10, 10, 150, 130, 3)
				strokeRect(m, 40, 40, 100, 100, 3)
			},
			count: 1,
		},
		{
			name: "two separate boxes",
			draw: func(m *image.Gray) {
				strokeRect(m, 10, 10, 90, 60, 3)
				strokeRect(m, 110, 80, 190, 140, 3)
			},
			count: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := newMask(200, 150)
			tt.draw(mask)

			shapes, err := DetectShapes(mask, config.Default().Detection)
			if err != nil {
				t.Fatalf("DetectShapes failed: %v", err)
			}
			if shapes == nil {
				t.Fatal("DetectShapes should return an empty slice, not nil")
			}
			if len(shapes) != tt.count {
				t.Errorf("got %d shapes, want %d", len(shapes), tt.count)
			}
		})
	}
}

func TestDetectShapes_RasterOrder(t *testing.T) {
	mask := newMask(300, 200)
	strokeRect(mask, 150, 100, 280, 180, 3) // lower right, listed second
	strokeRect(mask, 10, 20, 100, 90, 3)    // upper left, listed first

	shapes, err := DetectShapes(mask, config.Default().Detection)
	if err != nil {
		t.Fatalf("DetectShapes failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}
	if shapes[0].Y != 20 || shapes[1].Y != 100 {
		t.Errorf("order: got y=%d then y=%d, want 20 then 100", shapes[0].Y, shapes[1].Y)
	}
}

func TestDetectShapes_CornerRange(t *testing.T) {
	mask := newMask(200, 150)
	strokeRect(mask, 20, 20, 119, 79, 3)

	cfg := config.Default().Detection
	cfg.MinCorners = 3
	cfg.MaxCorners = 3

	shapes, err := DetectShapes(mask, cfg)
	if err != nil {
		t.Fatalf("DetectShapes failed: %v", err)
	}
	if len(shapes) != 0 {
		t.Errorf("four-cornered box should be rejected by a 3..3 range, got %d shapes", len(shapes))
	}
}

func TestDetectShapes_MinAreaIsConfigurable(t *testing.T) {
	mask := newMask(100, 100)
	fillRect(mask, 10, 10, 19, 19) // area 81

	cfg := config.Default().Detection
	cfg.MinContourArea = 50

	shapes, err := DetectShapes(mask, cfg)
	if err != nil {
		t.Fatalf("DetectShapes failed: %v", err)
	}
	if len(shapes) != 1 {
		t.Errorf("got %d shapes, want 1 with a lowered area floor", len(shapes))
	}
}

func TestDetectShapes_InvalidConfig(t *testing.T) {
	cfg := config.Default().Detection
	cfg.MinCorners = 10

	_, err := DetectShapes(newMask(10, 10), cfg)
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.ConfigError, got %v", err)
	}
}
