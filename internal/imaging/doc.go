// Package imaging provides the raster operations of the sketch pipeline.
//
// This package decodes encoded sketch images into an opaque pixel buffer and
// implements the low-level filters the preprocessor chains together:
// grayscale conversion, Gaussian blur, adaptive and global binarization,
// morphological close/open, Canny edge detection, resizing, and debug
// annotation. It is a thin, deterministic layer over bild, imaging and
// x/image; it holds no configuration of its own.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Every image returned by this package has bounds starting at (0,0)
//
// # Masks
//
// Binary masks are *image.Gray values containing only MaskForeground (255,
// ink) and MaskBackground (0, paper). Dark strokes on light paper map to
// foreground so that contour extraction follows the drawing.
//
// # Decoding
//
// Decode accepts base64 with an optional data URI header. Supported formats
// are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF orientation is applied and
// transparency is flattened onto white, so a sketch drawn on a transparent
// canvas is treated like ink on paper. Every failure is a *DecodeError.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their inputs, so they can be called
// concurrently on shared images.
package imaging
