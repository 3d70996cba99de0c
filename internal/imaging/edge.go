package imaging

import (
	"image"
	"math"
)

// Canny computes a binary edge map from an already smoothed grayscale
// image. Edge pixels are 255, everything else 0.
//
// Parameters:
//   - gray: Blurred luminance image. No additional smoothing is applied.
//   - thresholdLow: Hysteresis low threshold (0-255). Weaker gradients are discarded.
//   - thresholdHigh: Hysteresis high threshold (0-255). Stronger gradients are always kept.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  2. Non-maximum suppression: Thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  3. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels between thresholdLow and thresholdHigh are weak edges
//     (kept only if 8-connected to a strong edge)
//     - Pixels below thresholdLow are discarded
//
// Gradients are computed on intensities normalized to [0,1] and the
// thresholds are scaled the same way.
func Canny(gray *image.Gray, thresholdLow, thresholdHigh int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	lum := make([][]float64, height)
	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			lum[y][x] = float64(row[x]) / 255.0
		}
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += lum[py][px] * sobelX[ky+1][kx+1]
					gy += lum[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag > 0 && mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		row := result.Pix[y*result.Stride:]
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val == 0 {
				continue
			}
			if val >= highThresh {
				row[x] = 255
			} else if val >= lowThresh {
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					row[x] = 255
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
