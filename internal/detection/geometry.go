package detection

import "math"

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is a closed boundary given as an ordered list of pixel
// coordinates. The last point connects back to the first.
type Contour []Point

// Area returns the enclosed area using the shoelace formula over the
// contour's pixel centres.
func (c Contour) Area() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum int
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return math.Abs(float64(sum)) / 2
}

// Perimeter returns the length of the closed polyline.
func (c Contour) Perimeter() float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var length float64
	for i := 0; i < n; i++ {
		length += distance(c[i], c[(i+1)%n])
	}
	return length
}

// BoundingBox returns the smallest axis-aligned box containing every
// contour pixel as (x, y, width, height), counting both end pixels.
func (c Contour) BoundingBox() (x, y, width, height int) {
	if len(c) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX - minX + 1, maxY - minY + 1
}

// Approximate simplifies the closed contour with the Douglas-Peucker
// algorithm. Points closer than epsilon to the simplified outline are
// dropped.
//
// The contour is split at the point farthest from its first point and each
// half is simplified independently, so the result does not depend on where
// along a straight edge the trace happened to start.
func (c Contour) Approximate(epsilon float64) Contour {
	n := len(c)
	if n < 3 {
		out := make(Contour, n)
		copy(out, c)
		return out
	}

	far := 0
	var farDist float64
	for i := 1; i < n; i++ {
		if d := distance(c[0], c[i]); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return Contour{c[0]}
	}

	// Close the ring so the second half ends back at the start point.
	ring := make(Contour, n+1)
	copy(ring, c)
	ring[n] = c[0]

	keep := make([]bool, n+1)
	keep[0], keep[far], keep[n] = true, true, true
	douglasPeucker(ring, 0, far, epsilon, keep)
	douglasPeucker(ring, far, n, epsilon, keep)

	out := make(Contour, 0, 8)
	for i := 0; i < n; i++ {
		if keep[i] {
			out = append(out, ring[i])
		}
	}
	return out
}

// douglasPeucker marks the points of pts[first..last] that survive
// simplification. It uses an explicit stack so long, nearly straight runs
// cannot exhaust the goroutine stack.
func douglasPeucker(pts Contour, first, last int, epsilon float64, keep []bool) {
	type span struct{ a, b int }
	stack := []span{{first, last}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.b-s.a < 2 {
			continue
		}

		idx := -1
		var maxDist float64
		for i := s.a + 1; i < s.b; i++ {
			if d := segmentDistance(pts[i], pts[s.a], pts[s.b]); d > maxDist {
				idx, maxDist = i, d
			}
		}
		if idx < 0 || maxDist <= epsilon {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.a, idx}, span{idx, s.b})
	}
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	if dx == 0 && dy == 0 {
		return distance(p, a)
	}
	t := (float64(p.X-a.X)*dx + float64(p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	px := float64(a.X) + t*dx
	py := float64(a.Y) + t*dy
	return math.Hypot(float64(p.X)-px, float64(p.Y)-py)
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
