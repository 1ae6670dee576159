package psf

import (
	"fmt"
	"math"

	"github.com/skypix/srcmeas/core/kernel"
	"github.com/skypix/srcmeas/core/measure"
)

// doubleGaussian is the circular profile
//
//	V(r) = [exp(-r^2/2s1^2) + b*exp(-r^2/2s2^2)] / (1 + b)
//
// normalized to V(0) = 1 at the peak. It is spatially constant.
type doubleGaussian struct {
	sigma1 float64
	sigma2 float64
	b      float64
	norm   float64
}

func (g doubleGaussian) ValueAt(dx, dy float64, _, _ int) float64 {
	r2 := dx*dx + dy*dy
	v := math.Exp(-r2 / (2 * g.sigma1 * g.sigma1))
	if g.b != 0 {
		v += g.b * math.Exp(-r2/(2*g.sigma2*g.sigma2))
	}
	return v * g.norm
}

// NewDoubleGaussian builds a double-Gaussian PSF with its kernel realisation
// sampled on a width x height grid. sigma1 must be positive; a non-positive
// sigma2 collapses to a single Gaussian.
func NewDoubleGaussian(width, height int, sigma1, sigma2, b float64) (*PSF, error) {
	if sigma1 <= 0 {
		return nil, fmt.Errorf("%w: sigma1 = %g must be positive", measure.ErrBadConfig, sigma1)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: PSF raster size %dx%d", measure.ErrBadConfig, width, height)
	}
	if sigma2 <= 0 {
		sigma2, b = sigma1, 0
	}

	prof := doubleGaussian{sigma1: sigma1, sigma2: sigma2, b: b, norm: 1 / (1 + b)}
	k, err := kernel.Sample(width, height, func(dx, dy float64) float64 {
		return prof.ValueAt(dx, dy, 0, 0)
	})
	if err != nil {
		return nil, err
	}
	p, err := NewPSF(prof, width, height)
	if err != nil {
		return nil, err
	}
	p.SetKernel(k)
	return p, nil
}
