package config

import (
	"fmt"

	"github.com/skypix/srcmeas/core/image"
)

// AlgorithmConfig selects one registered algorithm by name and carries its
// raw settings, decoded by the algorithm constructor.
type AlgorithmConfig struct {
	Name string         `json:"name"`
	Conf map[string]any `json:"conf"`
}

// PSFConfig describes the point-spread function used for a run. The three
// parameters are handed to the named factory unchanged; for "psf.dgauss"
// they are sigma1, sigma2 and the wing amplitude b.
type PSFConfig struct {
	Name   string  `json:"name"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	P0     float64 `json:"p0"`
	P1     float64 `json:"p1"`
	P2     float64 `json:"p2"`
}

// MeasurementConfig selects the algorithms of a run. Unknown algorithm
// names pass validation here and fail at service construction, where the
// registries are consulted.
type MeasurementConfig struct {
	Centroid   AlgorithmConfig  `json:"centroid"`
	Shape      AlgorithmConfig  `json:"shape"`
	Flux       AlgorithmConfig  `json:"flux"`
	PSF        PSFConfig        `json:"psf"`
	Background float64          `json:"background"`
	Defects    image.DefectList `json:"defects"`
}

// SetDefaults applies the builtin algorithm names and a generic seeing PSF.
func (c *MeasurementConfig) SetDefaults() {
	if c.Centroid.Name == "" {
		c.Centroid.Name = "centroid.naive"
	}
	if c.Shape.Name == "" {
		c.Shape.Name = "shape.naive"
	}
	if c.Flux.Name == "" {
		c.Flux.Name = "flux.naive"
	}
	if c.PSF.Name == "" {
		c.PSF.Name = "psf.dgauss"
	}
	if c.PSF.Width == 0 {
		c.PSF.Width = 21
	}
	if c.PSF.Height == 0 {
		c.PSF.Height = 21
	}
	if c.PSF.P0 == 0 {
		c.PSF.P0 = 1.5
	}
}

// Validate checks geometric sanity of the PSF and the defect list.
func (c MeasurementConfig) Validate() error {
	if c.PSF.Width <= 0 || c.PSF.Height <= 0 {
		return fmt.Errorf("psf dimensions must be positive, got %dx%d", c.PSF.Width, c.PSF.Height)
	}
	for i, d := range c.Defects {
		if d.X1 < d.X0 || d.Y1 < d.Y0 {
			return fmt.Errorf("defect %d has inverted corners", i)
		}
	}
	return nil
}
