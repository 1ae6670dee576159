// Package psf models point-spread functions: a point-evaluation profile, an
// optional kernel realisation for convolution, and raster-size hints for
// materializing the PSF as an image. Concrete variants are built through the
// factory registry so callers select them by name.
package psf

import (
	"fmt"

	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/kernel"
	"github.com/skypix/srcmeas/core/measure"
)

// Profile evaluates a PSF model at an offset (dx, dy) from its center. x, y
// give the absolute image position the value is wanted for; spatially
// constant models ignore them.
type Profile interface {
	ValueAt(dx, dy float64, x, y int) float64
}

// PSF couples a profile with an optional kernel realisation and the raster
// size used by Image. The size hints are presentation only and independent
// of the kernel geometry. Hint mutation must not race Image or Convolve on
// the same instance; sharing a PSF read-only across goroutines is fine.
type PSF struct {
	profile Profile
	kernel  kernel.Kernel
	width   int
	height  int
}

// Measurement algorithms consume a PSF through measure.PSF.
var _ measure.PSF = (*PSF)(nil)

// NewPSF wraps a profile with the given raster-size hints and no kernel.
func NewPSF(profile Profile, width, height int) (*PSF, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: PSF needs a profile", measure.ErrBadConfig)
	}
	return &PSF{profile: profile, width: width, height: height}, nil
}

// Value evaluates the profile at an offset from the PSF center, for models
// with no spatial variation.
func (p *PSF) Value(dx, dy float64) float64 { return p.profile.ValueAt(dx, dy, 0, 0) }

// ValueAt evaluates the profile at offset (dx, dy) for absolute image
// position (x, y).
func (p *PSF) ValueAt(dx, dy float64, x, y int) float64 { return p.profile.ValueAt(dx, dy, x, y) }

// Kernel returns the realisation, or nil when the PSF has none.
func (p *PSF) Kernel() kernel.Kernel { return p.kernel }

// SetKernel installs (or clears) the realisation.
func (p *PSF) SetKernel(k kernel.Kernel) { p.kernel = k }

func (p *PSF) Width() int  { return p.width }
func (p *PSF) Height() int { return p.height }

func (p *PSF) SetWidth(w int)  { p.width = w }
func (p *PSF) SetHeight(h int) { p.height = h }

// Dimensions returns the raster-size hints.
func (p *PSF) Dimensions() (int, int) { return p.width, p.height }

// Image materializes the PSF as a width x height raster centered on the
// pixel containing (x, y). Samples are evaluated at their continuous offset
// from (x, y), so a fractional center shifts the rendered profile.
func (p *PSF) Image(x, y float64) (*image.Raster[float64], error) {
	if p.width <= 0 || p.height <= 0 {
		return nil, fmt.Errorf("%w: PSF raster size %dx%d", measure.ErrPrecondition, p.width, p.height)
	}
	ix, _ := image.PositionToIndex(x)
	iy, _ := image.PositionToIndex(y)

	out := image.NewRaster[float64](p.width, p.height)
	out.SetOrigin(ix-p.width/2, iy-p.height/2)
	for row := 0; row < p.height; row++ {
		py := out.Y0() + row
		for col := 0; col < p.width; col++ {
			px := out.X0() + col
			out.SetAt(px, py, p.profile.ValueAt(image.PixelCenter(px)-x, image.PixelCenter(py)-y, px, py))
		}
	}
	return out, nil
}

// Convolve applies the kernel realisation to src, writing into dst. A PSF
// without a usable kernel cannot convolve.
func (p *PSF) Convolve(dst image.Writer, src image.View, doNormalize bool, edgeBit int) error {
	if p.kernel == nil || p.kernel.Width() <= 0 || p.kernel.Height() <= 0 {
		return fmt.Errorf("%w: PSF does not have a realisation that can be used for convolution", measure.ErrPrecondition)
	}
	return kernel.Convolve(dst, src, p.kernel, doNormalize, edgeBit)
}
