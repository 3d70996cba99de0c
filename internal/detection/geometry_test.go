package detection

import (
	"math"
	"testing"
)

// rectContour returns the boundary of the rectangle (x1,y1)-(x2,y2) walked
// one pixel at a time, starting at the top-left corner.
func rectContour(x1, y1, x2, y2 int) Contour {
	c := Contour{}
	for x := x1; x < x2; x++ {
		c = append(c, Point{x, y1})
	}
	for y := y1; y < y2; y++ {
		c = append(c, Point{x2, y})
	}
	for x := x2; x > x1; x-- {
		c = append(c, Point{x, y2})
	}
	for y := y2; y > y1; y-- {
		c = append(c, Point{x1, y})
	}
	return c
}

func TestContour_Area(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    float64
	}{
		{"square corners", Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 100},
		{"square walked", rectContour(0, 0, 10, 10), 100},
		{"counter-clockwise", Contour{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 100},
		{"triangle", Contour{{0, 0}, {20, 0}, {0, 20}}, 200},
		{"line", Contour{{0, 0}, {5, 0}, {10, 0}, {5, 0}}, 0},
		{"two points", Contour{{0, 0}, {1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contour.Area(); got != tt.want {
				t.Errorf("Area() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestContour_Perimeter(t *testing.T) {
	if got := rectContour(0, 0, 10, 5).Perimeter(); got != 30 {
		t.Errorf("rectangle perimeter = %f, want 30", got)
	}
	diag := Contour{{0, 0}, {3, 4}}
	if got := diag.Perimeter(); got != 10 {
		t.Errorf("closed two-point perimeter = %f, want 10", got)
	}
	if got := (Contour{{1, 1}}).Perimeter(); got != 0 {
		t.Errorf("single point perimeter = %f, want 0", got)
	}
}

func TestContour_BoundingBox(t *testing.T) {
	x, y, w, h := rectContour(5, 7, 24, 16).BoundingBox()
	if x != 5 || y != 7 || w != 20 || h != 10 {
		t.Errorf("BoundingBox() = (%d,%d,%d,%d), want (5,7,20,10)", x, y, w, h)
	}

	x, y, w, h = Contour{{3, 3}}.BoundingBox()
	if x != 3 || y != 3 || w != 1 || h != 1 {
		t.Errorf("single point box = (%d,%d,%d,%d), want (3,3,1,1)", x, y, w, h)
	}
}

func TestContour_Approximate(t *testing.T) {
	triangle := Contour{}
	for x := 0; x < 20; x++ {
		triangle = append(triangle, Point{x, 0})
	}
	for i := 0; i < 20; i++ {
		triangle = append(triangle, Point{20 - i, i})
	}
	for y := 20; y > 0; y-- {
		triangle = append(triangle, Point{0, y})
	}

	tests := []struct {
		name    string
		contour Contour
		want    int
	}{
		{"rectangle", rectContour(0, 0, 40, 20), 4},
		{"square", rectContour(10, 10, 30, 30), 4},
		{"triangle", triangle, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eps := 0.02 * tt.contour.Perimeter()
			got := tt.contour.Approximate(eps)
			if len(got) != tt.want {
				t.Errorf("Approximate() kept %d points %v, want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestContour_ApproximateKeepsCorners(t *testing.T) {
	got := rectContour(0, 0, 40, 20).Approximate(1.0)
	want := map[Point]bool{{0, 0}: true, {40, 0}: true, {40, 20}: true, {0, 20}: true}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected vertex %v", p)
		}
	}
}

func TestContour_ApproximateShort(t *testing.T) {
	c := Contour{{0, 0}, {5, 5}}
	got := c.Approximate(1)
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	got[0] = Point{9, 9}
	if c[0] != (Point{0, 0}) {
		t.Error("Approximate must not alias its input")
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"perpendicular", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"beyond end", Point{13, 4}, Point{0, 0}, Point{10, 0}, 5},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentDistance(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("segmentDistance = %f, want %f", got, tt.want)
			}
		})
	}
}
