package imaging

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct, fully opaque colors by walking the
// hue circle at fixed saturation and value. The result is deterministic
// for a given n.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	for i := 0; i < n; i++ {
		hue := 360.0 * float64(i) / float64(n)
		r, g, b := colorful.Hsv(hue, 0.85, 0.80).RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// HexColor formats c as "#rrggbb", ignoring alpha.
func HexColor(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Clamped().Hex()
}
