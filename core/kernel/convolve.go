package kernel

import (
	"fmt"

	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/measure"
)

// Convolve correlates src with k and writes the result into dst. dst and src
// must have equal dimensions; they may carry different origins and pixel
// types. Border pixels, where the kernel support leaves the raster, copy the
// source value through; when edgeBit >= 0 and dst carries a mask plane,
// 1<<edgeBit is ORed into the mask there. With doNormalize the kernel is
// scaled to unit sum.
func Convolve(dst image.Writer, src image.View, k Kernel, doNormalize bool, edgeBit int) error {
	if k == nil || k.Width() <= 0 || k.Height() <= 0 {
		return fmt.Errorf("%w: convolution kernel has no usable size", measure.ErrPrecondition)
	}
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return fmt.Errorf("%w: dst %dx%d and src %dx%d differ", measure.ErrPrecondition,
			dst.Width(), dst.Height(), src.Width(), src.Height())
	}

	scale := 1.0
	if doNormalize {
		sum := k.Sum()
		if sum == 0 {
			return fmt.Errorf("%w: kernel sums to zero, cannot normalize", measure.ErrComputation)
		}
		scale = 1 / sum
	}

	kw, kh := k.Width(), k.Height()
	cx, cy := (kw-1)/2, (kh-1)/2
	width, height := src.Width(), src.Height()
	mask, _ := dst.(image.MaskSetter)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			xd, yd := dst.X0()+col, dst.Y0()+row
			xs, ys := src.X0()+col, src.Y0()+row

			border := col < cx || col+kw-cx-1 >= width || row < cy || row+kh-cy-1 >= height
			if border {
				dst.SetFloat(xd, yd, src.FloatAt(xs, ys))
				if edgeBit >= 0 && mask != nil {
					mask.OrMask(xd, yd, int32(1)<<edgeBit)
				}
				continue
			}

			var sum float64
			for ky := 0; ky < kh; ky++ {
				for kx := 0; kx < kw; kx++ {
					sum += k.At(kx, ky) * src.FloatAt(xs+kx-cx, ys+ky-cy)
				}
			}
			dst.SetFloat(xd, yd, sum*scale)
		}
	}
	return nil
}
