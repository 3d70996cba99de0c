package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createOutlineImage draws a black rectangle outline of the given stroke
// width on a white background. The rectangle spans [x1,x2) x [y1,y2).
func createOutlineImage(width, height, x1, y1, x2, y2, stroke int) *image.NRGBA {
	img := solidNRGBA(width, height, color.NRGBA{255, 255, 255, 255})
	black := color.NRGBA{0, 0, 0, 255}
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if x < x1+stroke || x >= x2-stroke || y < y1+stroke || y >= y2-stroke {
				img.SetNRGBA(x, y, black)
			}
		}
	}
	return img
}

func countForeground(mask *image.Gray) int {
	n := 0
	for _, v := range mask.Pix {
		if v == MaskForeground {
			n++
		}
	}
	return n
}

func TestGrayscale(t *testing.T) {
	img := solidNRGBA(4, 4, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 2, color.NRGBA{255, 0, 0, 255})

	gray := Grayscale(img)
	if gray.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds: got %v", gray.Bounds())
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 255},
		{1, 1, 0},
		{2, 2, 76}, // 0.299 * 255
	}
	for _, tt := range tests {
		if got := gray.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGaussianBlur(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 21, 21))
	for i := range gray.Pix {
		gray.Pix[i] = 255
	}
	gray.SetGray(10, 10, color.Gray{Y: 0})

	blurred := GaussianBlur(gray, 5)

	center := blurred.GrayAt(10, 10).Y
	if center == 0 || center == 255 {
		t.Errorf("center should be smoothed, got %d", center)
	}
	if got := blurred.GrayAt(0, 0).Y; got < 254 {
		t.Errorf("far pixel should stay white, got %d", got)
	}
	if gray.GrayAt(10, 10).Y != 0 {
		t.Error("source image was modified")
	}
}

func TestGaussianBlur_KernelOne(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 5, 5))
	gray.SetGray(2, 2, color.Gray{Y: 200})

	out := GaussianBlur(gray, 1)
	if out == gray {
		t.Error("kernel size 1 should still return a copy")
	}
	if out.GrayAt(2, 2).Y != 200 {
		t.Errorf("kernel size 1 should not change pixels, got %d", out.GrayAt(2, 2).Y)
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
		wantScale    float64
	}{
		{"landscape downscale", 2400, 1200, 1200, 1200, 600, 0.5},
		{"portrait downscale", 800, 1600, 1200, 600, 1200, 0.75},
		{"within cap", 800, 600, 1200, 800, 600, 1.0},
		{"exactly cap", 1200, 800, 1200, 1200, 800, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			out, scale := FitWithin(img, tt.max)
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
			}
			if diff := scale - tt.wantScale; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("scale: got %f, want %f", scale, tt.wantScale)
			}
			if tt.wantScale == 1.0 && out != img {
				t.Error("images within the cap should be returned as is")
			}
		})
	}
}

func TestAdaptiveThreshold_Outline(t *testing.T) {
	img := createOutlineImage(60, 60, 10, 10, 50, 50, 2)
	mask := AdaptiveThreshold(Grayscale(img), 11, 2)

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"left stroke", 10, 30, MaskForeground},
		{"top stroke", 30, 11, MaskForeground},
		{"interior", 30, 30, MaskBackground},
		{"outside", 2, 2, MaskBackground},
	}
	for _, tt := range tests {
		if got := mask.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("%s (%d,%d): got %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAdaptiveThreshold_UniformImages(t *testing.T) {
	for _, level := range []uint8{0, 90, 255} {
		gray := image.NewGray(image.Rect(0, 0, 40, 30))
		for i := range gray.Pix {
			gray.Pix[i] = level
		}
		if n := countForeground(AdaptiveThreshold(gray, 11, 2)); n != 0 {
			t.Errorf("uniform level %d: got %d foreground pixels, want 0", level, n)
		}
	}
}

func TestGlobalThreshold(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 2))
	for x := 0; x < 10; x++ {
		gray.SetGray(x, 0, color.Gray{Y: 100})
		gray.SetGray(x, 1, color.Gray{Y: 200})
	}

	mask := GlobalThreshold(gray, 127)
	if got := mask.GrayAt(3, 0).Y; got != MaskForeground {
		t.Errorf("dark pixel: got %d, want foreground", got)
	}
	if got := mask.GrayAt(3, 1).Y; got != MaskBackground {
		t.Errorf("light pixel: got %d, want background", got)
	}
}

func TestMorphology_CloseBridgesGap(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 30, 30))
	for y := 10; y <= 12; y++ {
		for x := 2; x < 28; x++ {
			if x != 15 {
				mask.SetGray(x, y, color.Gray{Y: MaskForeground})
			}
		}
	}

	closed := Close(mask, 3, 1)
	if got := closed.GrayAt(15, 11).Y; got != MaskForeground {
		t.Errorf("gap should be bridged, got %d", got)
	}
	if got := closed.GrayAt(15, 20).Y; got != MaskBackground {
		t.Errorf("background far from the line changed, got %d", got)
	}
	if mask.GrayAt(15, 11).Y != MaskBackground {
		t.Error("source mask was modified")
	}
}

func TestMorphology_OpenRemovesSpecks(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 30, 30))
	mask.SetGray(5, 5, color.Gray{Y: MaskForeground})
	for y := 10; y < 15; y++ {
		for x := 10; x < 15; x++ {
			mask.SetGray(x, y, color.Gray{Y: MaskForeground})
		}
	}

	opened := Open(mask, 3, 1)
	if got := opened.GrayAt(5, 5).Y; got != MaskBackground {
		t.Errorf("speck should be removed, got %d", got)
	}
	if got := opened.GrayAt(12, 12).Y; got != MaskForeground {
		t.Errorf("block should survive, got %d", got)
	}
	if got := opened.GrayAt(10, 10).Y; got != MaskForeground {
		t.Errorf("block corner should be restored, got %d", got)
	}
}

func TestMorphology_ZeroIterations(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 5, 5))
	mask.SetGray(2, 2, color.Gray{Y: MaskForeground})

	out := Dilate(mask, 3, 0)
	if out == mask {
		t.Error("zero iterations should still return a copy")
	}
	if countForeground(out) != 1 {
		t.Errorf("zero iterations changed the mask: %d foreground pixels", countForeground(out))
	}
}
