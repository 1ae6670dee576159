// Package model defines the measurement records exchanged with downstream
// consumers (stream publishers, sinks, scenario runners).
package model

import "time"

// SourceRecord is the flattened result of measuring one source. It is the
// payload published on the measurement stream and consumed by QA runs.
type SourceRecord struct {
	RunID    string `json:"run_id"`
	SourceID int    `json:"source_id"`

	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	XErr float64 `json:"x_err"`
	YErr float64 `json:"y_err"`

	Flux    float64 `json:"flux"`
	FluxErr float64 `json:"flux_err"`

	M0  float64 `json:"m0"`
	Mxx float64 `json:"mxx"`
	Mxy float64 `json:"mxy"`
	Myy float64 `json:"myy"`
	E1  float64 `json:"e1"`
	E2  float64 `json:"e2"`
	Rms float64 `json:"rms"`

	Flags     int  `json:"flags"`
	Defective bool `json:"defective"` // true when the source overlaps a known-bad region

	MeasuredAt time.Time `json:"measured_at"`
}
