package imaging

import (
	"image"
	"testing"
)

// createEdgeTestGray creates a grayscale image with a dark square in the
// middle of a light background.
func createEdgeTestGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= width/4 && x < 3*width/4 && y >= height/4 && y < 3*height/4 {
				img.Pix[y*img.Stride+x] = 0
			} else {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func TestCanny(t *testing.T) {
	gray := createEdgeTestGray(100, 100)
	edges := Canny(gray, 50, 150)

	if edges.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds: got %v, want 100x100", edges.Bounds())
	}

	// The square spans [25,75); its left border is a vertical step at x=24/25.
	found := false
	for x := 22; x <= 27; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected an edge pixel near the left border of the square")
	}

	if edges.GrayAt(50, 50).Y != 0 {
		t.Error("interior of the square should not be an edge")
	}
	if edges.GrayAt(5, 5).Y != 0 {
		t.Error("background should not be an edge")
	}
}

func TestCanny_OnlyBinaryValues(t *testing.T) {
	edges := Canny(GaussianBlur(createEdgeTestGray(60, 60), 5), 50, 150)
	for i, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has value %d, want 0 or 255", i, v)
		}
	}
}

func TestCanny_UniformImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 50, 50))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}

	edges := Canny(gray, 50, 150)
	for i, v := range edges.Pix {
		if v != 0 {
			t.Fatalf("uniform image produced an edge at index %d", i)
		}
	}
}

func TestCanny_HigherThresholdsFindFewerEdges(t *testing.T) {
	gray := GaussianBlur(createEdgeTestGray(80, 80), 5)

	count := func(img *image.Gray) int {
		n := 0
		for _, v := range img.Pix {
			if v == 255 {
				n++
			}
		}
		return n
	}

	low := count(Canny(gray, 10, 50))
	high := count(Canny(gray, 200, 250))
	if high > low {
		t.Errorf("high thresholds found more edges (%d) than low thresholds (%d)", high, low)
	}
	if low == 0 {
		t.Error("low thresholds should find edges")
	}
}

func TestCanny_EmptyImage(t *testing.T) {
	edges := Canny(image.NewGray(image.Rect(0, 0, 0, 0)), 50, 150)
	if !edges.Bounds().Empty() {
		t.Errorf("expected empty result, got %v", edges.Bounds())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
