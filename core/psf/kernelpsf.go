package psf

import (
	"fmt"

	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/kernel"
	"github.com/skypix/srcmeas/core/measure"
)

// kernelProfile evaluates a kernel at the sample nearest the requested
// offset; outside the support it is zero.
type kernelProfile struct {
	k kernel.Kernel
}

func (p kernelProfile) ValueAt(dx, dy float64, _, _ int) float64 {
	ox, _ := image.PositionToIndex(dx)
	oy, _ := image.PositionToIndex(dy)
	kx := ox + (p.k.Width()-1)/2
	ky := oy + (p.k.Height()-1)/2
	if kx < 0 || kx >= p.k.Width() || ky < 0 || ky >= p.k.Height() {
		return 0
	}
	return p.k.At(kx, ky)
}

// NewKernelBacked wraps a caller-supplied kernel as a PSF. The raster-size
// hints start at the kernel dimensions.
func NewKernelBacked(k kernel.Kernel) (*PSF, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: kernel-backed PSF needs a kernel", measure.ErrBadConfig)
	}
	p, err := NewPSF(kernelProfile{k: k}, k.Width(), k.Height())
	if err != nil {
		return nil, err
	}
	p.SetKernel(k)
	return p, nil
}
