package simulator

import (
	"errors"
	"math"
	"testing"

	"github.com/skypix/srcmeas/core/measure"
)

func TestRenderDeterministic(t *testing.T) {
	f := Field{
		Width: 32, Height: 32, Background: 100, NoiseSigma: 5,
		Sources: []Source{{X: 16, Y: 16, Flux: 5000, Sigma1: 1.5}},
	}
	a, err := f.Render(42)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := f.Render(42)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	c, err := f.Render(43)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	same, diff := true, false
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a.FloatAt(x, y) != b.FloatAt(x, y) {
				same = false
			}
			if a.FloatAt(x, y) != c.FloatAt(x, y) {
				diff = true
			}
		}
	}
	if !same {
		t.Errorf("same seed must reproduce the field")
	}
	if !diff {
		t.Errorf("different seed should change the noise")
	}
}

func TestRenderFluxConserved(t *testing.T) {
	f := Field{
		Width: 64, Height: 64, Background: 10,
		Sources: []Source{{X: 32, Y: 32, Flux: 20000, Sigma1: 2, Sigma2: 4, B: 0.1}},
	}
	img, err := f.Render(1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var sum float64
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			sum += img.FloatAt(x, y)
		}
	}
	got := sum - 10*64*64
	if math.Abs(got-20000) > 1 {
		t.Errorf("injected flux: got %v want 20000", got)
	}
}

func TestRenderCentroidRoundTrip(t *testing.T) {
	f := Field{
		Width: 48, Height: 48, Background: 100,
		Sources: []Source{{X: 24, Y: 24, Flux: 10000, Sigma1: 1.5}},
	}
	img, err := f.Render(7)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	est, err := measure.NewCentroider("centroid.naive", nil)
	if err != nil {
		t.Fatalf("centroider: %v", err)
	}
	cen, err := measure.ApplyCentroid(est, img, 24, 24, nil, 100)
	if err != nil {
		t.Fatalf("centroid: %v", err)
	}
	if math.Abs(cen.X-24) > 1e-3 || math.Abs(cen.Y-24) > 1e-3 {
		t.Errorf("centroid off truth: (%v, %v)", cen.X, cen.Y)
	}
}

func TestRenderNoiseStatistics(t *testing.T) {
	f := Field{Width: 64, Height: 64, Background: 50, NoiseSigma: 5}
	img, err := f.Render(11)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var sum float64
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			sum += img.FloatAt(x, y)
		}
	}
	mean := sum / (64 * 64)
	if math.Abs(mean-50) > 0.5 {
		t.Errorf("background mean off: %v", mean)
	}
	if f.Variance() != 25 {
		t.Errorf("variance: %v", f.Variance())
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := (Field{Width: 0, Height: 4}).Render(1); err == nil {
		t.Fatal("expected size error")
	}
	f := Field{Width: 16, Height: 16, Sources: []Source{{X: 8, Y: 8, Flux: 1, Sigma1: 0}}}
	if _, err := f.Render(1); !errors.Is(err, measure.ErrBadConfig) {
		t.Fatalf("expected bad config error, got %v", err)
	}
}
