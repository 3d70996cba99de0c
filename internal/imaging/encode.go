package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PNGDataURIPrefix is the header of every data URI produced by EncodePNGDataURI.
const PNGDataURIPrefix = "data:image/png;base64,"

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGDataURI encodes img as a base64 PNG data URI.
func EncodePNGDataURI(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return PNGDataURIPrefix + base64.StdEncoding.EncodeToString(data), nil
}
