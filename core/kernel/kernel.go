// Package kernel provides discrete 2-D kernels and the convolution routine
// used to apply a PSF realisation to an image.
package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/skypix/srcmeas/core/measure"
)

// Kernel is a discrete 2-D response. The center sits at
// ((Width-1)/2, (Height-1)/2); odd dimensions keep it on a sample.
type Kernel interface {
	Width() int
	Height() int
	At(kx, ky int) float64
	Sum() float64
}

// FixedKernel stores an explicit weight grid.
type FixedKernel struct {
	width   int
	height  int
	weights []float64
	sum     float64
}

// NewFixedKernel builds a kernel from row-major weights.
func NewFixedKernel(width, height int, weights []float64) (*FixedKernel, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: kernel size %dx%d", measure.ErrBadConfig, width, height)
	}
	if len(weights) != width*height {
		return nil, fmt.Errorf("%w: %d weights for a %dx%d kernel", measure.ErrBadConfig, len(weights), width, height)
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &FixedKernel{width: width, height: height, weights: w, sum: floats.Sum(w)}, nil
}

// Sample builds a kernel by evaluating f at each sample's offset from the
// kernel center.
func Sample(width, height int, f func(dx, dy float64) float64) (*FixedKernel, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: kernel size %dx%d", measure.ErrBadConfig, width, height)
	}
	cx, cy := (width-1)/2, (height-1)/2
	w := make([]float64, width*height)
	for ky := 0; ky < height; ky++ {
		for kx := 0; kx < width; kx++ {
			w[ky*width+kx] = f(float64(kx-cx), float64(ky-cy))
		}
	}
	return &FixedKernel{width: width, height: height, weights: w, sum: floats.Sum(w)}, nil
}

func (k *FixedKernel) Width() int   { return k.width }
func (k *FixedKernel) Height() int  { return k.height }
func (k *FixedKernel) Sum() float64 { return k.sum }

// At returns the weight at kernel sample (kx, ky); out of range panics.
func (k *FixedKernel) At(kx, ky int) float64 {
	if kx < 0 || kx >= k.width || ky < 0 || ky >= k.height {
		panic(fmt.Sprintf("kernel: sample (%d, %d) outside %dx%d", kx, ky, k.width, k.height))
	}
	return k.weights[ky*k.width+kx]
}
