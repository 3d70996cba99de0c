package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAnnotate(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	red := color.NRGBA{255, 0, 0, 255}
	src := solidNRGBA(100, 100, white)

	out := Annotate(src, []Annotation{
		{Rect: image.Rect(20, 30, 60, 70), Label: "card (65%)", Color: red},
	})

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"left edge", 20, 50, red},
		{"left edge inner stroke", 21, 50, red},
		{"right edge", 59, 50, red},
		{"bottom edge", 40, 69, red},
		{"interior", 40, 50, white},
		{"outside", 90, 90, white},
		{"label tab", 20, 13, red},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s (%d,%d): got %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	if src.NRGBAAt(20, 50) != white {
		t.Error("source image was modified")
	}
}

func TestAnnotate_LabelAtTopEdgeGoesInside(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	src := solidNRGBA(200, 100, white)

	out := Annotate(src, []Annotation{
		{Rect: image.Rect(0, 0, 200, 40), Label: "navbar (95%)", Color: blue},
	})

	// No room above, so the tab starts just below the top stroke.
	if got := out.NRGBAAt(3, annotationStroke); got != blue {
		t.Errorf("label tab pixel: got %v, want %v", got, blue)
	}
}

func TestAnnotate_ClipsToBounds(t *testing.T) {
	src := solidNRGBA(50, 50, color.NRGBA{255, 255, 255, 255})
	out := Annotate(src, []Annotation{
		{Rect: image.Rect(40, 40, 80, 80), Label: "x"},
		{Rect: image.Rect(100, 100, 120, 120), Label: "offscreen"},
	})
	if out.Bounds() != src.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), src.Bounds())
	}
	// Default color is red.
	if got := out.NRGBAAt(40, 45); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("clipped box edge: got %v", got)
	}
}

func TestPalette(t *testing.T) {
	p := Palette(17)
	if len(p) != 17 {
		t.Fatalf("len: got %d, want 17", len(p))
	}

	seen := make(map[color.NRGBA]bool)
	for i, c := range p {
		if c.A != 255 {
			t.Errorf("color %d not opaque: %v", i, c)
		}
		if seen[c] {
			t.Errorf("color %d duplicates an earlier entry: %v", i, c)
		}
		seen[c] = true
	}

	again := Palette(17)
	for i := range p {
		if p[i] != again[i] {
			t.Fatalf("palette not deterministic at %d", i)
		}
	}

	if Palette(0) != nil {
		t.Error("Palette(0) should be nil")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{color.NRGBA{255, 0, 0, 255}, "#ff0000"},
		{color.White, "#ffffff"},
		{color.Black, "#000000"},
	}
	for _, tt := range tests {
		if got := HexColor(tt.c); got != tt.want {
			t.Errorf("HexColor(%v) = %s, want %s", tt.c, got, tt.want)
		}
	}
}
