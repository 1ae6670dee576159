package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Shape flag bits, set by shape variants.
const (
	// ShapeFlagEdge marks a measurement window clipped at the raster
	// boundary.
	ShapeFlagEdge = 1 << iota
	// ShapeFlagNoVariance marks a shape measured without a usable pixel
	// variance; its covariance is all zero.
	ShapeFlagNoVariance
)

// Row order of the Shape covariance.
const (
	CovM0 = iota
	CovMxx
	CovMxy
	CovMyy
)

// Shape holds a measured position, the zeroth and second moments, the fourth
// cross moment, and a 4x4 covariance over (m0, mxx, mxy, myy). Moments are
// NaN and the covariance zero until set. Setters exist for variant
// construction; a Shape handed to callers is read-only by convention.
type Shape struct {
	centroid Centroid
	m0       float64
	mxx      float64
	mxy      float64
	myy      float64
	mxy4     float64
	covar    *mat.SymDense
	flags    int
}

// NewShape returns a shape with all moments unset.
func NewShape() *Shape {
	return &Shape{
		m0:    math.NaN(),
		mxx:   math.NaN(),
		mxy:   math.NaN(),
		myy:   math.NaN(),
		mxy4:  math.NaN(),
		covar: mat.NewSymDense(4, nil),
	}
}

func (s *Shape) Centroid() Centroid { return s.centroid }
func (s *Shape) M0() float64        { return s.m0 }
func (s *Shape) Mxx() float64       { return s.mxx }
func (s *Shape) Mxy() float64       { return s.mxy }
func (s *Shape) Myy() float64       { return s.myy }
func (s *Shape) Mxy4() float64      { return s.mxy4 }
func (s *Shape) Flags() int         { return s.flags }

func (s *Shape) SetCentroid(c Centroid) { s.centroid = c }
func (s *Shape) SetMxy4(v float64)      { s.mxy4 = v }
func (s *Shape) SetFlags(f int)         { s.flags = f }

// SetMoments stores the zeroth and second moments.
func (s *Shape) SetMoments(m0, mxx, mxy, myy float64) {
	s.m0, s.mxx, s.mxy, s.myy = m0, mxx, mxy, myy
}

// SetCovar copies c into the shape. The diagonal holds variances and must be
// non-negative.
func (s *Shape) SetCovar(c *mat.SymDense) error {
	if c == nil || c.SymmetricDim() != 4 {
		return fmt.Errorf("%w: shape covariance must be 4x4", ErrBadConfig)
	}
	for i := 0; i < 4; i++ {
		if c.At(i, i) < 0 {
			return fmt.Errorf("%w: negative variance on covariance diagonal %d", ErrBadConfig, i)
		}
	}
	s.covar.CopySym(c)
	return nil
}

// Covar returns the moment covariance in (m0, mxx, mxy, myy) order. Callers
// must not modify it.
func (s *Shape) Covar() *mat.SymDense { return s.covar }

// Moment variances, read off the covariance diagonal.
func (s *Shape) M0Err() float64  { return s.covar.At(CovM0, CovM0) }
func (s *Shape) MxxErr() float64 { return s.covar.At(CovMxx, CovMxx) }
func (s *Shape) MxyErr() float64 { return s.covar.At(CovMxy, CovMxy) }
func (s *Shape) MyyErr() float64 { return s.covar.At(CovMyy, CovMyy) }

// E1 returns the (mxx-myy)/(mxx+myy) ellipticity component. NaN when the
// trace is zero or the moments are unset.
func (s *Shape) E1() float64 {
	t := s.mxx + s.myy
	if t == 0 {
		return math.NaN()
	}
	return (s.mxx - s.myy) / t
}

// E2 returns the 2*mxy/(mxx+myy) ellipticity component.
func (s *Shape) E2() float64 {
	t := s.mxx + s.myy
	if t == 0 {
		return math.NaN()
	}
	return 2 * s.mxy / t
}

// Rms returns the root mean square radius sqrt((mxx+myy)/2).
func (s *Shape) Rms() float64 {
	return math.Sqrt((s.mxx + s.myy) / 2)
}

// E1Err returns the first-order variance of E1 under the stored covariance.
func (s *Shape) E1Err() float64 {
	if t := s.mxx + s.myy; t == 0 || math.IsNaN(t) {
		return math.NaN()
	}
	j := s.jacE1()
	return mat.Inner(j, s.covar, j)
}

// E2Err returns the first-order variance of E2.
func (s *Shape) E2Err() float64 {
	if t := s.mxx + s.myy; t == 0 || math.IsNaN(t) {
		return math.NaN()
	}
	j := s.jacE2()
	return mat.Inner(j, s.covar, j)
}

// E1E2Err returns the first-order covariance between E1 and E2.
func (s *Shape) E1E2Err() float64 {
	if t := s.mxx + s.myy; t == 0 || math.IsNaN(t) {
		return math.NaN()
	}
	return mat.Inner(s.jacE1(), s.covar, s.jacE2())
}

// RmsErr returns the first-order variance of Rms.
func (s *Shape) RmsErr() float64 {
	rms := s.Rms()
	if rms == 0 || math.IsNaN(rms) {
		return math.NaN()
	}
	d := 1 / (4 * rms)
	j := mat.NewVecDense(4, []float64{0, d, 0, d})
	return mat.Inner(j, s.covar, j)
}

// Gradient of e1 = (mxx-myy)/(mxx+myy) in (m0, mxx, mxy, myy) order.
func (s *Shape) jacE1() *mat.VecDense {
	t := s.mxx + s.myy
	tt := t * t
	return mat.NewVecDense(4, []float64{0, 2 * s.myy / tt, 0, -2 * s.mxx / tt})
}

// Gradient of e2 = 2*mxy/(mxx+myy).
func (s *Shape) jacE2() *mat.VecDense {
	t := s.mxx + s.myy
	tt := t * t
	return mat.NewVecDense(4, []float64{0, -2 * s.mxy / tt, 2 / t, -2 * s.mxy / tt})
}
