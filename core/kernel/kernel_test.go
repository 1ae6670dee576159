package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/measure"
)

func TestFixedKernel_Construction(t *testing.T) {
	k, err := NewFixedKernel(3, 1, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if k.Sum() != 6 || k.At(1, 0) != 2 {
		t.Fatalf("sum %v at(1,0) %v", k.Sum(), k.At(1, 0))
	}

	if _, err := NewFixedKernel(3, 3, []float64{1}); !errors.Is(err, measure.ErrBadConfig) {
		t.Fatalf("short weights: %v", err)
	}
	if _, err := NewFixedKernel(0, 3, nil); !errors.Is(err, measure.ErrBadConfig) {
		t.Fatalf("zero width: %v", err)
	}
}

func TestSample(t *testing.T) {
	k, err := Sample(3, 3, func(dx, dy float64) float64 { return dx + 10*dy })
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got := k.At(0, 0); got != -11 {
		t.Fatalf("at(0,0) = %v, want -11", got)
	}
	if got := k.At(1, 1); got != 0 {
		t.Fatalf("at(1,1) = %v, want 0", got)
	}
	if got := k.At(2, 2); got != 11 {
		t.Fatalf("at(2,2) = %v, want 11", got)
	}
	if k.Sum() != 0 {
		t.Fatalf("sum = %v, want 0", k.Sum())
	}
}

func TestConvolve_ConstantImageIdentity(t *testing.T) {
	src := image.NewRaster[float32](7, 6)
	src.Fill(3.25)
	dst := image.NewMasked[float32](7, 6)

	box, err := NewFixedKernel(3, 3, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	if err := Convolve(dst, src, box, true, 4); err != nil {
		t.Fatalf("convolve: %v", err)
	}

	edges := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 7; x++ {
			if got := dst.FloatAt(x, y); math.Abs(got-3.25) > 1e-6 {
				t.Fatalf("pixel (%d, %d) = %v, want 3.25", x, y, got)
			}
			if dst.MaskAt(x, y)&(1<<4) != 0 {
				edges++
			}
		}
	}
	// Border of a 7x6 raster under a 3x3 kernel.
	if edges != 7*6-5*4 {
		t.Fatalf("edge-flagged pixels = %d, want %d", edges, 7*6-5*4)
	}
}

func TestConvolve_DeltaPicksUpReflectedKernel(t *testing.T) {
	src := image.NewRaster[float64](5, 5)
	src.SetAt(2, 2, 1)
	dst := image.NewRaster[float64](5, 5)

	k, _ := NewFixedKernel(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err := Convolve(dst, src, k, false, -1); err != nil {
		t.Fatalf("convolve: %v", err)
	}

	cases := []struct {
		x, y int
		want float64
	}{
		{1, 1, 9},
		{2, 2, 5},
		{3, 3, 1},
		{3, 1, 7},
		{1, 3, 3},
	}
	for _, c := range cases {
		if got := dst.FloatAt(c.x, c.y); got != c.want {
			t.Fatalf("pixel (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestConvolve_DifferentOrigins(t *testing.T) {
	src := image.NewRaster[float64](4, 4)
	src.SetOrigin(10, 20)
	src.Fill(2)
	dst := image.NewRaster[float64](4, 4)

	k, _ := NewFixedKernel(3, 3, []float64{0, 0, 0, 0, 1, 0, 0, 0, 0})
	if err := Convolve(dst, src, k, false, -1); err != nil {
		t.Fatalf("convolve: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if dst.FloatAt(x, y) != 2 {
				t.Fatalf("pixel (%d, %d) = %v, want 2", x, y, dst.FloatAt(x, y))
			}
		}
	}
}

func TestConvolve_Failures(t *testing.T) {
	src := image.NewRaster[float64](4, 4)
	dst := image.NewRaster[float64](5, 4)
	k, _ := NewFixedKernel(3, 3, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1})

	if err := Convolve(dst, src, k, false, -1); !errors.Is(err, measure.ErrPrecondition) {
		t.Fatalf("size mismatch: %v", err)
	}
	if err := Convolve(image.NewRaster[float64](4, 4), src, nil, false, -1); !errors.Is(err, measure.ErrPrecondition) {
		t.Fatalf("nil kernel: %v", err)
	}

	zero, _ := NewFixedKernel(3, 3, []float64{1, -1, 1, -1, 0, -1, 1, -1, 1})
	if err := Convolve(image.NewRaster[float64](4, 4), src, zero, true, -1); !errors.Is(err, measure.ErrComputation) {
		t.Fatalf("zero-sum normalize: %v", err)
	}
}
