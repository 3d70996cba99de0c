package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Grayscale converts img to single-channel luminance using BT.601 weights.
func Grayscale(img image.Image) *image.Gray {
	return toGray(effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB))
}

// GaussianBlur smooths gray with a Gaussian kernel of the given odd edge
// length. Borders replicate the edge pixels. A kernel size of 1 or less
// returns an unmodified copy.
func GaussianBlur(gray *image.Gray, kernelSize int) *image.Gray {
	if kernelSize <= 1 {
		return cloneGray(gray)
	}
	return toGray(blur.Gaussian(gray, kernelRadius(kernelSize)))
}

// FitWithin downscales img so that neither side exceeds maxDimension,
// preserving aspect ratio. It returns the resulting image and the applied
// scale factor (1.0 when no resize was needed).
func FitWithin(img *image.NRGBA, maxDimension int) (*image.NRGBA, float64) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxDimension <= 0 || longest <= maxDimension {
		return img, 1.0
	}
	scale := float64(maxDimension) / float64(longest)
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Box), scale
}

// kernelRadius maps an odd kernel edge length to the radius the bild
// filters expect (length = 2*radius + 1).
func kernelRadius(kernelSize int) float64 {
	return float64(kernelSize-1) / 2
}

// toGray copies the red channel of an RGBA image produced by a grayscale
// pipeline into a single-channel image.
func toGray(src *image.RGBA) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

func cloneGray(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
