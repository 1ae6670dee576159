package measure

import "github.com/skypix/srcmeas/core/image"

// PSF is the point-spread response algorithms may consult. dx, dy are
// offsets from the PSF center; x, y the absolute pixel the value is wanted
// for, ignored by spatially constant models. A nil PSF is legal everywhere.
type PSF interface {
	ValueAt(dx, dy float64, x, y int) float64
}

// Centroider estimates the position of one source.
type Centroider interface {
	MeasureCentroid(img image.View, xcen, ycen float64, psf PSF, background float64) (Centroid, error)
}

// ShapeMeasurer estimates second moments and their covariance.
type ShapeMeasurer interface {
	MeasureShape(img image.View, xcen, ycen float64, psf PSF, background float64) (*Shape, error)
}

// FluxMeasurer estimates a total count.
type FluxMeasurer interface {
	MeasureFlux(img image.View, xcen, ycen float64, psf PSF, background float64) (Flux, error)
}

// Default registries, one per capability family. Builtin variants register
// themselves on package init; external packages may add their own.
var (
	Centroiders = NewRegistry[Constructor[Centroider]]()
	Shapers     = NewRegistry[Constructor[ShapeMeasurer]]()
	Photometers = NewRegistry[Constructor[FluxMeasurer]]()
)

// NewCentroider builds the named centroid variant.
func NewCentroider(name string, conf map[string]any) (Centroider, error) {
	return Create(Centroiders, name, conf)
}

// NewShapeMeasurer builds the named shape variant.
func NewShapeMeasurer(name string, conf map[string]any) (ShapeMeasurer, error) {
	return Create(Shapers, name, conf)
}

// NewFluxMeasurer builds the named flux variant.
func NewFluxMeasurer(name string, conf map[string]any) (FluxMeasurer, error) {
	return Create(Photometers, name, conf)
}

// ApplyCentroid runs one centroid measurement. Every measurement enters
// through an Apply function so cross-cutting behavior has a single home; the
// variant carries only the numeric work.
func ApplyCentroid(c Centroider, img image.View, xcen, ycen float64, psf PSF, background float64) (Centroid, error) {
	return c.MeasureCentroid(img, xcen, ycen, psf, background)
}

// ApplyShape runs one shape measurement.
func ApplyShape(s ShapeMeasurer, img image.View, xcen, ycen float64, psf PSF, background float64) (*Shape, error) {
	return s.MeasureShape(img, xcen, ycen, psf, background)
}

// ApplyFlux runs one flux measurement.
func ApplyFlux(f FluxMeasurer, img image.View, xcen, ycen float64, psf PSF, background float64) (Flux, error) {
	return f.MeasureFlux(img, xcen, ycen, psf, background)
}
