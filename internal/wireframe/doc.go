// Package wireframe defines the result model of sketch analysis: typed UI
// components positioned on a fixed-size canvas.
//
// ComponentType is a closed set of seventeen roles. It marshals to and
// from lowercase names ("navbar", "bottom_nav"). Each type has a table of
// placeholder properties (DefaultProps) so a detected layout can be
// rendered before any content is filled in.
//
// Geometry enters this package in image pixels and leaves it in canvas
// pixels through Scale, which guarantees every box lies inside the canvas.
package wireframe
