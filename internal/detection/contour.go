//go:build !gocv

package detection

import (
	"image"
)

// ContourBackend names the contour extraction implementation compiled in.
const ContourBackend = "go"

// Neighbour offsets in counter-clockwise order as seen on screen (Y grows
// downward): E, NE, N, NW, W, SW, S, SE. Clockwise is decreasing index.
var (
	ringDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ringDY = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

const dirWest = 4

// findExternalContours returns the outer border of every foreground region
// that is not enclosed by another region.
//
// Foreground is 8-connected and background 4-connected. A region is
// external when the background pixel directly above its topmost-leftmost
// pixel reaches the image frame (or the region touches the top edge).
// Contours are returned in raster order of that first pixel.
func findExternalContours(mask *image.Gray) ([]Contour, error) {
	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	fg := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < width; x++ {
			fg[y*width+x] = row[x] != 0
		}
	}

	outside := outerBackground(fg, width, height)
	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !fg[i] || visited[i] {
				continue
			}
			// (x, y) is the first pixel of a new region in raster order.
			floodFill(fg, visited, x, y, width, height)
			if y > 0 && !outside[i-width] {
				continue
			}
			contours = append(contours, traceBorder(fg, x, y, width, height))
		}
	}
	return contours, nil
}

// outerBackground marks the background pixels 4-connected to the image
// frame.
func outerBackground(fg []bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]int, 0, 2*(width+height))

	seed := func(x, y int) {
		i := y*width + x
		if !fg[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < width; x++ {
		seed(x, 0)
		seed(x, height-1)
	}
	for y := 0; y < height; y++ {
		seed(0, y)
		seed(width-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		if x > 0 {
			seed(x-1, y)
		}
		if x < width-1 {
			seed(x+1, y)
		}
		if y > 0 {
			seed(x, y-1)
		}
		if y < height-1 {
			seed(x, y+1)
		}
	}
	return outside
}

// floodFill marks the 8-connected foreground region containing
// (startX, startY) as visited.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions.
func floodFill(fg, visited []bool, startX, startY, width, height int) {
	stack := []Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*width + nx
				if fg[i] && !visited[i] {
					visited[i] = true
					stack = append(stack, Point{X: nx, Y: ny})
				}
			}
		}
	}
}

// traceBorder follows the outer border of the region whose topmost-leftmost
// pixel is (startX, startY), in the manner of Suzuki-Abe border following.
// The pixel west of the start is background by construction.
func traceBorder(fg []bool, startX, startY, width, height int) Contour {
	isFG := func(x, y int) bool {
		return x >= 0 && x < width && y >= 0 && y < height && fg[y*width+x]
	}
	start := Point{X: startX, Y: startY}

	// Search clockwise from the west neighbour for the first foreground
	// pixel; it becomes the last pixel of the closed border.
	first := -1
	for k := 0; k < 8; k++ {
		d := (dirWest - k + 8) % 8
		if isFG(startX+ringDX[d], startY+ringDY[d]) {
			first = d
			break
		}
	}
	if first < 0 {
		return Contour{start}
	}
	last := Point{X: startX + ringDX[first], Y: startY + ringDY[first]}

	contour := Contour{}
	prev, cur := last, start
	maxSteps := 4*width*height + 8
	for step := 0; step < maxSteps; step++ {
		contour = append(contour, cur)

		back := direction(cur, prev)
		var next Point
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			nx, ny := cur.X+ringDX[d], cur.Y+ringDY[d]
			if isFG(nx, ny) {
				next = Point{X: nx, Y: ny}
				break
			}
		}

		if next == start && cur == last {
			break
		}
		prev, cur = cur, next
	}
	return contour
}

// direction returns the ring index of the step from a to its neighbour b.
func direction(a, b Point) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	for d := 0; d < 8; d++ {
		if ringDX[d] == dx && ringDY[d] == dy {
			return d
		}
	}
	return dirWest
}
