package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Dilate grows foreground regions with a square kernel of the given odd
// edge length, applied iterations times.
func Dilate(mask *image.Gray, kernelSize, iterations int) *image.Gray {
	out := mask
	for i := 0; i < iterations; i++ {
		out = toGray(effect.Dilate(out, kernelRadius(kernelSize)))
	}
	if out == mask {
		return cloneGray(mask)
	}
	return out
}

// Erode shrinks foreground regions with a square kernel of the given odd
// edge length, applied iterations times.
func Erode(mask *image.Gray, kernelSize, iterations int) *image.Gray {
	out := mask
	for i := 0; i < iterations; i++ {
		out = toGray(effect.Erode(out, kernelRadius(kernelSize)))
	}
	if out == mask {
		return cloneGray(mask)
	}
	return out
}

// Close dilates then erodes, bridging gaps narrower than the kernel so
// that hand-drawn outlines with small breaks become closed loops.
func Close(mask *image.Gray, kernelSize, iterations int) *image.Gray {
	return Erode(Dilate(mask, kernelSize, iterations), kernelSize, iterations)
}

// Open erodes then dilates, removing specks smaller than the kernel.
func Open(mask *image.Gray, kernelSize, iterations int) *image.Gray {
	return Dilate(Erode(mask, kernelSize, iterations), kernelSize, iterations)
}
