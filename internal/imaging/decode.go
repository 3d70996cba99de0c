package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DecodeError reports input that could not be turned into a raster image:
// a malformed base64 payload, an unknown format, or corrupt image data.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode image: %s: %v", e.Reason, e.Err)
	}
	return "failed to decode image: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RawImage is a decoded sketch ready for preprocessing.
//
// Image is always a fully opaque *image.NRGBA with bounds starting at (0,0);
// transparent areas of the source have been composited onto white.
type RawImage struct {
	Image *image.NRGBA

	// Width and Height are the pixel dimensions after EXIF orientation.
	Width  int
	Height int

	// Channels is the channel count of the source color model:
	// 1 for grayscale, 3 for color, 4 for color with alpha.
	Channels int

	// Format is the registered format name ("png", "jpeg", "gif", "bmp",
	// "tiff", "webp").
	Format string
}

// Decode turns an encoded image string into a RawImage.
//
// The input is base64, optionally preceded by a data URI header such as
// "data:image/png;base64,". Embedded whitespace and missing padding are
// tolerated.
//
// maxPixels is passed through to DecodeBytes.
//
// Returns *DecodeError for every failure.
func Decode(input string, maxPixels int) (*RawImage, error) {
	payload := strings.TrimSpace(input)
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	if payload == "" {
		return nil, &DecodeError{Reason: "empty image data"}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if rawErr != nil {
			return nil, &DecodeError{Reason: "malformed base64", Err: err}
		}
	}

	return DecodeBytes(data, maxPixels)
}

// DecodeBytes decodes raw image file bytes into a RawImage.
//
// The format is sniffed from the content, EXIF orientation is applied, and
// any alpha channel is flattened onto a white background.
//
// The header is read first and images whose width*height exceeds maxPixels
// are rejected before the pixel data is decoded. A maxPixels of zero or less
// disables the check.
func DecodeBytes(data []byte, maxPixels int) (*RawImage, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty image data"}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "unsupported or unrecognized image format", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)}
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, &DecodeError{Reason: fmt.Sprintf("image dimensions %dx%d exceed the %d pixel limit", cfg.Width, cfg.Height, maxPixels)}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Reason: "corrupt " + format + " data", Err: err}
	}

	flat := flatten(img)
	bounds := flat.Bounds()

	return &RawImage{
		Image:    flat,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channelCount(cfg.ColorModel),
		Format:   format,
	}, nil
}

// FromImage wraps an in-memory image as a RawImage with the same alpha
// flattening DecodeBytes applies.
func FromImage(img image.Image) *RawImage {
	flat := flatten(img)
	bounds := flat.Bounds()
	return &RawImage{
		Image:    flat,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channelCount(img.ColorModel()),
		Format:   "memory",
	}
}

// flatten composites img onto an opaque white canvas of the same size.
func flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return imaging.Clone(img)
	}
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func channelCount(m color.Model) int {
	if _, ok := m.(color.Palette); ok {
		return 4
	}
	switch m {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return 4
	case color.AlphaModel, color.Alpha16Model:
		return 4
	}
	return 3
}
