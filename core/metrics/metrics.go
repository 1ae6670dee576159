package metrics

import "time"

// MeasurementEvent records the outcome of one algorithm application.
type MeasurementEvent struct {
	RunID     string
	SourceID  int
	Algorithm string
	// Outcome is "ok" or a measure error kind label.
	Outcome string
	Flags   int
	Time    time.Time
}

// MeasurementLatency records how long one algorithm application took.
type MeasurementLatency struct {
	Algorithm string
	Outcome   string
	Latency   time.Duration
}

// MeasurementSink records measurement telemetry for observability purposes.
type MeasurementSink interface {
	RecordMeasurements(events []MeasurementEvent) error
	RecordLatencies(latencies []MeasurementLatency) error
}

// SourceCountRecorder is implemented by sinks able to record how many
// sources a run measured.
type SourceCountRecorder interface {
	RecordSourceCount(n int) error
}

// NopSink implements MeasurementSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMeasurements([]MeasurementEvent) error { return nil }
func (NopSink) RecordLatencies([]MeasurementLatency) error  { return nil }
func (NopSink) RecordSourceCount(int) error                 { return nil }
