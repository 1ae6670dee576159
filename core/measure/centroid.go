package measure

// Centroid is a measured position with per-axis standard errors. Zero error
// means the variant produced no uncertainty estimate.
type Centroid struct {
	X    float64
	Y    float64
	XErr float64
	YErr float64
}

// Flux is a measured total count with its standard error.
type Flux struct {
	Value float64
	Err   float64
}
