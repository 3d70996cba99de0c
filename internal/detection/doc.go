// Package detection finds candidate UI shapes in a binary sketch mask.
//
// The input is the cleaned mask produced by the preprocessor: ink is
// foreground (non-zero), paper is background. The output is a list of
// Shape values describing the bounding geometry of every closed,
// roughly polygonal outline that is not nested inside another one.
//
// # Algorithm Overview
//
//  1. Contour Finding: outer borders of 8-connected foreground regions,
//     keeping only regions not enclosed by another region
//  2. Measurement: enclosed area (shoelace), perimeter, bounding box
//  3. Polygon Approximation: Douglas-Peucker with tolerance proportional
//     to the perimeter
//  4. Filtering: area floor, whole-image frame rejection, corner range
//
// # Contour Backends
//
// The default build traces contours in pure Go. Building with the "gocv"
// tag swaps in OpenCV's findContours through gocv; both backends report
// contours in raster order of each region's topmost-leftmost pixel, and
// the measurement and filtering steps are shared. ContourBackend reports
// which one is compiled in.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Shape boxes count pixels inclusively (a single pixel is 1x1)
//
// # Limitations
//
// Detection is purely geometric:
//   - Boxes drawn inside other boxes are not reported
//   - Outlines that touch merge into a single shape
//   - Curved outlines may exceed the corner range and be dropped
package detection
