// Package simulator renders synthetic star fields with known ground truth,
// for QA runs and demos.
package simulator

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/psf"
)

// Source is the ground truth of one injected star. The profile is the
// double-Gaussian of the psf package; Flux is the total injected count.
type Source struct {
	X      float64
	Y      float64
	Flux   float64
	Sigma1 float64
	Sigma2 float64
	B      float64
}

// Field describes a synthetic star field on a flat background with
// uncorrelated Gaussian noise.
type Field struct {
	Width      int
	Height     int
	Background float64
	NoiseSigma float64
	Sources    []Source
}

// Variance is the per-pixel variance of a rendered field.
func (f Field) Variance() float64 { return f.NoiseSigma * f.NoiseSigma }

// Render draws every source onto a fresh raster, then adds the background
// and noise. The same seed always yields the same pixels.
func (f Field) Render(seed uint64) (*image.Masked[float32], error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("field size %dx%d is not usable", f.Width, f.Height)
	}
	acc := image.NewRaster[float64](f.Width, f.Height)
	for i, src := range f.Sources {
		if err := stamp(acc, src); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}

	out := image.NewMasked[float32](f.Width, f.Height)
	noise := distuv.Normal{Mu: 0, Sigma: f.NoiseSigma, Src: rand.NewPCG(seed, seed)}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := acc.FloatAt(x, y) + f.Background
			if f.NoiseSigma > 0 {
				v += noise.Rand()
			}
			out.SetFloat(x, y, v)
		}
	}
	return out, nil
}

// stamp adds one source to the accumulator. The profile raster is
// normalized to its own sum, so the injected count equals src.Flux except
// for the part falling off the field.
func stamp(acc *image.Raster[float64], src Source) error {
	smax := src.Sigma1
	if src.B > 0 && src.Sigma2 > smax {
		smax = src.Sigma2
	}
	half := int(math.Ceil(4 * smax))
	if half < 3 {
		half = 3
	}
	size := 2*half + 1

	p, err := psf.NewDoubleGaussian(size, size, src.Sigma1, src.Sigma2, src.B)
	if err != nil {
		return err
	}
	profile, err := p.Image(src.X, src.Y)
	if err != nil {
		return err
	}

	var norm float64
	for y := profile.Y0(); y < profile.Y0()+profile.Height(); y++ {
		for x := profile.X0(); x < profile.X0()+profile.Width(); x++ {
			norm += profile.FloatAt(x, y)
		}
	}
	if norm <= 0 {
		return fmt.Errorf("profile of source at (%g, %g) sums to zero", src.X, src.Y)
	}

	scale := src.Flux / norm
	for y := profile.Y0(); y < profile.Y0()+profile.Height(); y++ {
		for x := profile.X0(); x < profile.X0()+profile.Width(); x++ {
			if !acc.Contains(x, y) {
				continue
			}
			acc.SetFloat(x, y, acc.FloatAt(x, y)+scale*profile.FloatAt(x, y))
		}
	}
	return nil
}
