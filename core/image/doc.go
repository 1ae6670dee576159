// Package image provides the pixel containers measurement code operates on:
// a generic raster parameterized over the pixel type, a masked variant with a
// per-pixel bit plane, and defect lists describing known-bad regions.
//
// Rasters use absolute coordinates: a raster remembers its origin (X0, Y0) in
// the parent frame and accessors take frame coordinates, so a cutout and the
// frame it was cut from address the same pixel with the same (x, y). The
// continuous position of pixel index i is exactly float64(i); pixel i spans
// [i-0.5, i+0.5) on each axis.
package image
