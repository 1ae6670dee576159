package image

// MaskSetter is implemented by containers that carry a per-pixel bit plane.
type MaskSetter interface {
	OrMask(x, y int, bits int32)
}

// Masked couples a pixel raster with an int32 mask plane of the same
// geometry. The mask accumulates per-pixel condition bits such as the edge
// bit set by convolution.
type Masked[P Pixel] struct {
	*Raster[P]
	mask *Raster[int32]
}

// NewMasked returns a zero-filled masked raster with origin (0, 0).
func NewMasked[P Pixel](width, height int) *Masked[P] {
	return &Masked[P]{
		Raster: NewRaster[P](width, height),
		mask:   NewRaster[int32](width, height),
	}
}

// Mask exposes the mask plane.
func (m *Masked[P]) Mask() *Raster[int32] { return m.mask }

// SetOrigin moves both planes together.
func (m *Masked[P]) SetOrigin(x0, y0 int) {
	m.Raster.SetOrigin(x0, y0)
	m.mask.SetOrigin(x0, y0)
}

// OrMask ORs bits into the mask at absolute position (x, y).
func (m *Masked[P]) OrMask(x, y int, bits int32) {
	m.mask.SetAt(x, y, m.mask.At(x, y)|bits)
}

// MaskAt returns the mask bits at absolute position (x, y).
func (m *Masked[P]) MaskAt(x, y int) int32 { return m.mask.At(x, y) }
