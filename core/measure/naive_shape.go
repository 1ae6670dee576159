package measure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/skypix/srcmeas/core/image"
)

func init() {
	Shapers.Register("shape.naive", newNaiveShape)
}

type naiveShapeConf struct {
	HalfWidth int     `json:"half_width"`
	Variance  float64 `json:"variance"`
}

// naiveShape computes background-subtracted unweighted moments over a square
// window of half-width halfWidth centered on the supplied position. Second
// moments are taken about that position, not about the refined first moment;
// the refined position is stored on the result. With a usable per-pixel
// variance the full moment covariance is propagated; otherwise it stays zero
// and the shape carries ShapeFlagNoVariance.
type naiveShape struct {
	halfWidth int
	variance  float64
}

func newNaiveShape(conf map[string]any) (ShapeMeasurer, error) {
	c := naiveShapeConf{HalfWidth: 7}
	if err := Decode(conf, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if c.HalfWidth <= 0 {
		return nil, fmt.Errorf("%w: half_width must be positive, got %d", ErrBadConfig, c.HalfWidth)
	}
	if c.Variance < 0 {
		return nil, fmt.Errorf("%w: variance must be non-negative, got %g", ErrBadConfig, c.Variance)
	}
	return naiveShape{halfWidth: c.HalfWidth, variance: c.Variance}, nil
}

func (a naiveShape) MeasureShape(img image.View, xcen, ycen float64, _ PSF, background float64) (*Shape, error) {
	ix, _ := image.PositionToIndex(xcen)
	iy, _ := image.PositionToIndex(ycen)

	x0, x1 := ix-a.halfWidth, ix+a.halfWidth
	y0, y1 := iy-a.halfWidth, iy+a.halfWidth
	left, right := img.X0(), img.X0()+img.Width()-1
	bottom, top := img.Y0(), img.Y0()+img.Height()-1
	if x1 < left || x0 > right || y1 < bottom || y0 > top {
		return nil, fmt.Errorf("%w: window around (%g, %g) lies outside the image", ErrPrecondition, xcen, ycen)
	}

	flags := 0
	if x0 < left {
		x0 = left
		flags |= ShapeFlagEdge
	}
	if x1 > right {
		x1 = right
		flags |= ShapeFlagEdge
	}
	if y0 < bottom {
		y0 = bottom
		flags |= ShapeFlagEdge
	}
	if y1 > top {
		y1 = top
		flags |= ShapeFlagEdge
	}

	// Weighted sums about the supplied center, plus the pure geometry sums
	// the covariance needs.
	var (
		s0, sx, sy, sxx, sxy, syy, sxxyy float64
		n, gxx, gxy, gyy                 float64
		gx4, gx3y, gx2y2, gxy3, gy4      float64
	)
	for y := y0; y <= y1; y++ {
		dy := image.PixelCenter(y) - ycen
		for x := x0; x <= x1; x++ {
			dx := image.PixelCenter(x) - xcen
			w := img.FloatAt(x, y) - background
			s0 += w
			sx += w * dx
			sy += w * dy
			sxx += w * dx * dx
			sxy += w * dx * dy
			syy += w * dy * dy
			sxxyy += w * dx * dx * dy * dy

			n++
			gxx += dx * dx
			gxy += dx * dy
			gyy += dy * dy
			gx4 += dx * dx * dx * dx
			gx3y += dx * dx * dx * dy
			gx2y2 += dx * dx * dy * dy
			gxy3 += dx * dy * dy * dy
			gy4 += dy * dy * dy * dy
		}
	}
	if s0 <= 0 {
		return nil, fmt.Errorf("%w: object at (%d, %d) has no counts", ErrComputation, ix, iy)
	}

	mxx, mxy, myy := sxx/s0, sxy/s0, syy/s0
	shape := NewShape()
	shape.SetCentroid(Centroid{X: xcen + sx/s0, Y: ycen + sy/s0})
	shape.SetMoments(s0, mxx, mxy, myy)
	shape.SetMxy4(sxxyy / s0)

	v := a.variance
	if v <= 0 && background > 0 {
		v = background
	}
	if v <= 0 {
		shape.SetFlags(flags | ShapeFlagNoVariance)
		return shape, nil
	}

	// Covariance of the raw sums (S0, Sxx, Sxy, Syy) under independent
	// per-pixel variance v, then the first-order transform to the stored
	// ratios m = S/S0.
	covS := mat.NewSymDense(4, nil)
	covS.SetSym(0, 0, v*n)
	covS.SetSym(0, 1, v*gxx)
	covS.SetSym(0, 2, v*gxy)
	covS.SetSym(0, 3, v*gyy)
	covS.SetSym(1, 1, v*gx4)
	covS.SetSym(1, 2, v*gx3y)
	covS.SetSym(1, 3, v*gx2y2)
	covS.SetSym(2, 2, v*gx2y2)
	covS.SetSym(2, 3, v*gxy3)
	covS.SetSym(3, 3, v*gy4)

	jac := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		-mxx / s0, 1 / s0, 0, 0,
		-mxy / s0, 0, 1 / s0, 0,
		-myy / s0, 0, 0, 1 / s0,
	})
	var jc, cov mat.Dense
	jc.Mul(jac, covS)
	cov.Mul(&jc, jac.T())

	covM := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			val := cov.At(i, j)
			if i == j && val < 0 {
				// Rounding noise; the exact value is non-negative.
				val = 0
			}
			covM.SetSym(i, j, val)
		}
	}
	if err := shape.SetCovar(covM); err != nil {
		return nil, err
	}
	shape.SetFlags(flags)
	return shape, nil
}
