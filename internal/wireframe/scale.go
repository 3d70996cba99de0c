package wireframe

import (
	"image"
	"math"
)

// Scale maps a bounding box in image pixels onto a canvas.
//
// X and width scale by canvas.Width/imgW, Y and height by
// canvas.Height/imgH; the two axes are independent, so the layout may
// stretch. Results are rounded to whole canvas pixels and clamped so the
// box lies inside [0,canvas.Width]x[0,canvas.Height] with a width and
// height of at least one pixel.
func Scale(box image.Rectangle, imgW, imgH int, canvas Size) (Position, Size) {
	x, w := scaleAxis(box.Min.X, box.Dx(), imgW, canvas.Width)
	y, h := scaleAxis(box.Min.Y, box.Dy(), imgH, canvas.Height)
	return Position{X: x, Y: y}, Size{Width: w, Height: h}
}

// scaleAxis scales one axis of a box and clamps it to [0, canvasLen].
func scaleAxis(start, length, imageLen, canvasLen int) (int, int) {
	if imageLen < 1 {
		imageLen = 1
	}
	if canvasLen < 1 {
		canvasLen = 1
	}
	factor := float64(canvasLen) / float64(imageLen)

	pos := int(math.Round(float64(start) * factor))
	size := int(math.Round(float64(length) * factor))

	if pos < 0 {
		size += pos
		pos = 0
	}
	if pos > canvasLen-1 {
		pos = canvasLen - 1
	}
	if size < 1 {
		size = 1
	}
	if pos+size > canvasLen {
		size = canvasLen - pos
	}
	return pos, size
}
