package measure

import (
	"fmt"

	"github.com/skypix/srcmeas/core/image"
)

func init() {
	Centroiders.Register("centroid.naive", newNaiveCentroid)
}

// naiveCentroid refines a position from the first moments of the 3x3
// neighborhood around the starting pixel. Adequate for well-sampled isolated
// sources; produces no uncertainty estimate and ignores the PSF.
type naiveCentroid struct{}

func newNaiveCentroid(map[string]any) (Centroider, error) {
	return naiveCentroid{}, nil
}

func (naiveCentroid) MeasureCentroid(img image.View, xcen, ycen float64, _ PSF, background float64) (Centroid, error) {
	ix, _ := image.PositionToIndex(xcen)
	iy, _ := image.PositionToIndex(ycen)

	if ix-1 < img.X0() || ix+1 > img.X0()+img.Width()-1 ||
		iy-1 < img.Y0() || iy+1 > img.Y0()+img.Height()-1 {
		return Centroid{}, fmt.Errorf("%w: 3x3 window around (%g, %g) leaves the image", ErrPrecondition, xcen, ycen)
	}

	var sum, sumDx, sumDy float64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			v := img.FloatAt(ix+dx, iy+dy) - background
			sum += v
			sumDx += v * float64(dx)
			sumDy += v * float64(dy)
		}
	}
	if sum == 0 {
		return Centroid{}, fmt.Errorf("%w: object at (%d, %d) has no counts", ErrComputation, ix, iy)
	}
	return Centroid{
		X: image.PixelCenter(ix) + sumDx/sum,
		Y: image.PixelCenter(iy) + sumDy/sum,
	}, nil
}
