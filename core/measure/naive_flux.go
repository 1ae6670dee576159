package measure

import (
	"fmt"
	"math"

	"github.com/skypix/srcmeas/core/image"
)

func init() {
	Photometers.Register("flux.naive", newNaiveFlux)
}

type naiveFluxConf struct {
	Radius   float64 `json:"radius"`
	Variance float64 `json:"variance"`
}

// naiveFlux sums background-subtracted counts in a circular aperture
// centered on the pixel containing the supplied position. The error is
// sqrt(npix*variance); zero when no variance is usable.
type naiveFlux struct {
	radius   float64
	variance float64
}

func newNaiveFlux(conf map[string]any) (FluxMeasurer, error) {
	c := naiveFluxConf{Radius: 9}
	if err := Decode(conf, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if c.Radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrBadConfig, c.Radius)
	}
	if c.Variance < 0 {
		return nil, fmt.Errorf("%w: variance must be non-negative, got %g", ErrBadConfig, c.Variance)
	}
	return naiveFlux{radius: c.Radius, variance: c.Variance}, nil
}

func (a naiveFlux) MeasureFlux(img image.View, xcen, ycen float64, _ PSF, background float64) (Flux, error) {
	ix, _ := image.PositionToIndex(xcen)
	iy, _ := image.PositionToIndex(ycen)

	r := int(math.Ceil(a.radius))
	x0, x1 := ix-r, ix+r
	y0, y1 := iy-r, iy+r
	left, right := img.X0(), img.X0()+img.Width()-1
	bottom, top := img.Y0(), img.Y0()+img.Height()-1
	if x1 < left || x0 > right || y1 < bottom || y0 > top {
		return Flux{}, fmt.Errorf("%w: aperture around (%g, %g) lies outside the image", ErrPrecondition, xcen, ycen)
	}
	x0, x1 = max(x0, left), min(x1, right)
	y0, y1 = max(y0, bottom), min(y1, top)

	r2 := a.radius * a.radius
	var sum float64
	npix := 0
	for y := y0; y <= y1; y++ {
		dy := image.PixelCenter(y) - image.PixelCenter(iy)
		for x := x0; x <= x1; x++ {
			dx := image.PixelCenter(x) - image.PixelCenter(ix)
			if dx*dx+dy*dy > r2 {
				continue
			}
			sum += img.FloatAt(x, y) - background
			npix++
		}
	}
	if npix == 0 {
		return Flux{}, fmt.Errorf("%w: aperture at (%d, %d) covers no pixels", ErrComputation, ix, iy)
	}

	v := a.variance
	if v <= 0 && background > 0 {
		v = background
	}
	out := Flux{Value: sum}
	if v > 0 {
		out.Err = math.Sqrt(float64(npix) * v)
	}
	return out, nil
}
