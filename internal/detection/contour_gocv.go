//go:build gocv

package detection

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// ContourBackend names the contour extraction implementation compiled in.
const ContourBackend = "opencv"

// findExternalContours extracts outer borders with OpenCV's
// RETR_EXTERNAL retrieval. Contours are reordered to raster order of
// their topmost-leftmost pixel so both backends report the same order.
func findExternalContours(mask *image.Gray) ([]Contour, error) {
	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	data := make([]byte, width*height)
	for y := 0; y < height; y++ {
		copy(data[y*width:(y+1)*width], mask.Pix[y*mask.Stride:])
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap mask: %w", err)
	}
	defer mat.Close()

	found := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		c := make(Contour, len(pts))
		for j, p := range pts {
			c[j] = Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, c)
	}

	sort.SliceStable(contours, func(i, j int) bool {
		a, b := topLeft(contours[i]), topLeft(contours[j])
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return contours, nil
}

// topLeft returns the first contour point in raster order.
func topLeft(c Contour) Point {
	best := c[0]
	for _, p := range c[1:] {
		if p.Y < best.Y || (p.Y == best.Y && p.X < best.X) {
			best = p
		}
	}
	return best
}
