// Package scenarios runs YAML-defined QA scenarios: render a synthetic
// field, measure every truth source, compare against tolerances.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skypix/srcmeas/simulator"
)

type SourceDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Flux   float64 `yaml:"flux"`
	Sigma1 float64 `yaml:"sigma1"`
	Sigma2 float64 `yaml:"sigma2,omitempty"`
	B      float64 `yaml:"b,omitempty"`
}

type FieldDef struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background float64     `yaml:"background"`
	NoiseSigma float64     `yaml:"noise_sigma"`
	Seed       uint64      `yaml:"seed"`
	Sources    []SourceDef `yaml:"sources"`
}

func (f FieldDef) ToField() simulator.Field {
	field := simulator.Field{
		Width:      f.Width,
		Height:     f.Height,
		Background: f.Background,
		NoiseSigma: f.NoiseSigma,
		Sources:    make([]simulator.Source, len(f.Sources)),
	}
	for i, s := range f.Sources {
		field.Sources[i] = simulator.Source{
			X: s.X, Y: s.Y, Flux: s.Flux,
			Sigma1: s.Sigma1, Sigma2: s.Sigma2, B: s.B,
		}
	}
	return field
}

type MeasureDef struct {
	ShapeHalfWidth int     `yaml:"shape_half_width,omitempty"`
	FluxRadius     float64 `yaml:"flux_radius,omitempty"`
}

type Expected struct {
	// MaxCentroidOffset bounds the distance between measured and true
	// position, in pixels.
	MaxCentroidOffset float64 `yaml:"max_centroid_offset"`
	// MaxEllipticity bounds |e1| and |e2|; injected sources are round.
	MaxEllipticity float64 `yaml:"max_ellipticity"`
	// Flux ratio bounds on measured/injected counts.
	MinFluxRatio float64 `yaml:"min_flux_ratio"`
	MaxFluxRatio float64 `yaml:"max_flux_ratio"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Field       FieldDef   `yaml:"field"`
	Measure     MeasureDef `yaml:"measure,omitempty"`
	Expected    Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
