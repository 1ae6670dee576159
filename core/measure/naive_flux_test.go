package measure

import (
	"errors"
	"math"
	"testing"

	"github.com/skypix/srcmeas/core/image"
)

func TestNaiveFlux_DeltaSource(t *testing.T) {
	img := image.NewRaster[float32](11, 11)
	img.SetAt(5, 5, 50)

	f, err := NewFluxMeasurer("flux.naive", map[string]any{"radius": 3.0})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	got, err := ApplyFlux(f, img, 5.2, 4.9, nil, 0)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if got.Value != 50 {
		t.Fatalf("flux = %v, want 50", got.Value)
	}
	if got.Err != 0 {
		t.Fatalf("flux err = %v, want 0 without variance", got.Err)
	}
}

func TestNaiveFlux_BackgroundAndVariance(t *testing.T) {
	img := image.NewRaster[float64](11, 11)
	img.Fill(1)
	img.SetAt(5, 5, 51)

	f, err := NewFluxMeasurer("flux.naive", map[string]any{"radius": 3.0, "variance": 2.0})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	got, err := f.MeasureFlux(img, 5, 5, nil, 1)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if math.Abs(got.Value-50) > 1e-12 {
		t.Fatalf("flux = %v, want 50", got.Value)
	}
	// A radius-3 aperture covers 29 pixels.
	if want := math.Sqrt(29 * 2.0); math.Abs(got.Err-want) > 1e-12 {
		t.Fatalf("flux err = %v, want %v", got.Err, want)
	}
}

func TestNaiveFlux_Failures(t *testing.T) {
	img := image.NewRaster[float64](5, 5)
	img.Fill(1)

	f, _ := NewFluxMeasurer("flux.naive", map[string]any{"radius": 2.0})
	if _, err := f.MeasureFlux(img, 50, 2, nil, 0); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("outside image: expected ErrPrecondition, got %v", err)
	}

	// Bounding box still touches the raster but the circle misses every
	// remaining pixel.
	tiny, _ := NewFluxMeasurer("flux.naive", map[string]any{"radius": 0.4})
	if _, err := tiny.MeasureFlux(img, 5, 2, nil, 0); !errors.Is(err, ErrComputation) {
		t.Fatalf("empty aperture: expected ErrComputation, got %v", err)
	}

	if _, err := NewFluxMeasurer("flux.naive", map[string]any{"radius": 0.0}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("zero radius: expected ErrBadConfig, got %v", err)
	}
}
