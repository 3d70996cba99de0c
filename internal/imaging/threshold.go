package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
)

// Mask pixel values. Foreground (ink) is white so that contour tracing
// follows the drawn strokes.
const (
	MaskBackground uint8 = 0
	MaskForeground uint8 = 255
)

// AdaptiveThreshold binarizes gray against a Gaussian-weighted local mean.
//
// A pixel becomes foreground when it is at least c levels darker than the
// weighted mean of its blockSize x blockSize neighbourhood. Dark strokes
// on light paper therefore come out white on black regardless of uneven
// illumination, and flat regions of any brightness stay background.
//
// Parameters:
//   - gray: Source luminance image, normally already blurred.
//   - blockSize: Odd window edge length (>= 3).
//   - c: Offset subtracted from the local mean.
func AdaptiveThreshold(gray *image.Gray, blockSize, c int) *image.Gray {
	mean := toGray(blur.Gaussian(gray, kernelRadius(blockSize)))

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride:]
		m := mean.Pix[y*mean.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			if int(src[x]) <= int(m[x])-c {
				out[x] = MaskForeground
			}
		}
	}
	return dst
}

// GlobalThreshold binarizes gray with a single cutoff: pixels darker than
// level become foreground.
func GlobalThreshold(gray *image.Gray, level int) *image.Gray {
	if level < 0 {
		level = 0
	}
	if level > 255 {
		level = 255
	}
	bright := segment.Threshold(gray, uint8(level))
	dst := image.NewGray(image.Rect(0, 0, bright.Bounds().Dx(), bright.Bounds().Dy()))
	for i, v := range bright.Pix {
		if v == 0 {
			dst.Pix[i] = MaskForeground
		}
	}
	return dst
}
