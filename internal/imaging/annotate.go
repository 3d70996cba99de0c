package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotation is one labelled box to draw on a debug image.
type Annotation struct {
	// Rect is the box in image pixel coordinates (Max exclusive).
	Rect  image.Rectangle
	Label string
	Color color.Color
}

// Stroke width of annotation boxes in pixels.
const annotationStroke = 2

// Annotate returns a copy of img with every annotation drawn as a box
// outline and a filled label tab at its top-left corner. The source image
// is not modified.
func Annotate(img image.Image, annotations []Annotation) *image.NRGBA {
	dst := imaging.Clone(img)
	bounds := dst.Bounds()

	for _, a := range annotations {
		r := a.Rect.Intersect(bounds)
		if r.Empty() {
			continue
		}
		c := a.Color
		if c == nil {
			c = color.NRGBA{R: 255, A: 255}
		}
		drawBox(dst, r, c)
		if a.Label != "" {
			drawLabel(dst, r.Min.X, r.Min.Y, a.Label, c)
		}
	}
	return dst
}

func drawBox(img *image.NRGBA, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	t := annotationStroke
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

// drawLabel renders text in white on a tab filled with bg. The tab sits
// just above (x, y) when there is room, otherwise just inside the box.
func drawLabel(img *image.NRGBA, x, y int, text string, bg color.Color) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := ascent + metrics.Descent.Ceil()
	textWidth := font.MeasureString(face, text).Ceil()
	const pad = 2

	top := y - lineHeight - 2*pad
	if top < img.Bounds().Min.Y {
		top = y + annotationStroke
	}
	tab := image.Rect(x, top, x+textWidth+2*pad, top+lineHeight+2*pad).Intersect(img.Bounds())
	draw.Draw(img, tab, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x+pad, top+pad+ascent),
	}
	d.DrawString(text)
}
