package metrics

// MultiSink fans measurement telemetry out to multiple sinks.
type MultiSink struct {
	Sinks []MeasurementSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MeasurementSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMeasurements forwards to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordMeasurements(events []MeasurementEvent) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordMeasurements(events); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordLatencies forwards to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordLatencies(latencies []MeasurementLatency) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordLatencies(latencies); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordSourceCount forwards to the sinks that record source counts.
func (m *MultiSink) RecordSourceCount(n int) error {
	var first error
	for _, s := range m.Sinks {
		if r, ok := s.(SourceCountRecorder); ok {
			if err := r.RecordSourceCount(n); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
