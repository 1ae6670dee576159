package image

import (
	"fmt"
	"math"
)

// Pixel enumerates the element types a Raster can carry.
type Pixel interface {
	~int32 | ~float32 | ~float64
}

// View is the read-only access surface measurement algorithms consume.
// FloatAt takes absolute frame coordinates.
type View interface {
	Width() int
	Height() int
	X0() int
	Y0() int
	FloatAt(x, y int) float64
}

// Writer extends View with float64 stores. Values are converted to the
// container's pixel type.
type Writer interface {
	View
	SetFloat(x, y int, v float64)
}

// Raster is a rectangular pixel array with an origin in the parent frame.
// Accessors take absolute coordinates; out-of-range access panics, matching
// slice semantics.
type Raster[P Pixel] struct {
	width  int
	height int
	x0, y0 int
	stride int
	pix    []P
}

// NewRaster returns a zero-filled raster with origin (0, 0).
func NewRaster[P Pixel](width, height int) *Raster[P] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("image: invalid raster size %dx%d", width, height))
	}
	return &Raster[P]{
		width:  width,
		height: height,
		stride: width,
		pix:    make([]P, width*height),
	}
}

func (r *Raster[P]) Width() int  { return r.width }
func (r *Raster[P]) Height() int { return r.height }
func (r *Raster[P]) X0() int     { return r.x0 }
func (r *Raster[P]) Y0() int     { return r.y0 }

// SetOrigin places the raster at (x0, y0) in the parent frame.
func (r *Raster[P]) SetOrigin(x0, y0 int) {
	r.x0, r.y0 = x0, y0
}

// Contains reports whether absolute position (x, y) falls inside the raster.
func (r *Raster[P]) Contains(x, y int) bool {
	return x >= r.x0 && x < r.x0+r.width && y >= r.y0 && y < r.y0+r.height
}

func (r *Raster[P]) index(x, y int) int {
	cx, cy := x-r.x0, y-r.y0
	if cx < 0 || cx >= r.width || cy < 0 || cy >= r.height {
		panic(fmt.Sprintf("image: access (%d, %d) outside [%d, %d)x[%d, %d)",
			x, y, r.x0, r.x0+r.width, r.y0, r.y0+r.height))
	}
	return cy*r.stride + cx
}

// At returns the pixel at absolute position (x, y).
func (r *Raster[P]) At(x, y int) P { return r.pix[r.index(x, y)] }

// SetAt stores v at absolute position (x, y).
func (r *Raster[P]) SetAt(x, y int, v P) { r.pix[r.index(x, y)] = v }

// FloatAt returns the pixel at (x, y) widened to float64.
func (r *Raster[P]) FloatAt(x, y int) float64 { return float64(r.pix[r.index(x, y)]) }

// SetFloat stores v at (x, y), converted to the pixel type.
func (r *Raster[P]) SetFloat(x, y int, v float64) { r.pix[r.index(x, y)] = P(v) }

// Fill sets every pixel to v.
func (r *Raster[P]) Fill(v P) {
	for row := 0; row < r.height; row++ {
		line := r.pix[row*r.stride : row*r.stride+r.width]
		for i := range line {
			line[i] = v
		}
	}
}

// SubRaster returns a width x height window with its top-left at absolute
// (x0, y0). The window shares the backing array: writes are visible to the
// parent.
func (r *Raster[P]) SubRaster(x0, y0, width, height int) (*Raster[P], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image: invalid subraster size %dx%d", width, height)
	}
	if !r.Contains(x0, y0) || !r.Contains(x0+width-1, y0+height-1) {
		return nil, fmt.Errorf("image: subraster [%d, %d)x[%d, %d) outside [%d, %d)x[%d, %d)",
			x0, x0+width, y0, y0+height, r.x0, r.x0+r.width, r.y0, r.y0+r.height)
	}
	off := (y0-r.y0)*r.stride + (x0 - r.x0)
	return &Raster[P]{
		width:  width,
		height: height,
		x0:     x0,
		y0:     y0,
		stride: r.stride,
		pix:    r.pix[off:],
	}, nil
}

// Clone returns a deep copy with its own backing array.
func (r *Raster[P]) Clone() *Raster[P] {
	out := NewRaster[P](r.width, r.height)
	out.x0, out.y0 = r.x0, r.y0
	for row := 0; row < r.height; row++ {
		copy(out.pix[row*out.stride:row*out.stride+r.width], r.pix[row*r.stride:row*r.stride+r.width])
	}
	return out
}

// PixelCenter returns the continuous position of the center of pixel i.
func PixelCenter(i int) float64 { return float64(i) }

// PositionToIndex returns the index of the pixel containing continuous
// position p and the residual offset from that pixel's center.
func PositionToIndex(p float64) (int, float64) {
	i := int(math.Floor(p + 0.5))
	return i, p - float64(i)
}
