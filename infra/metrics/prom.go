package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skypix/srcmeas/core/metrics"
)

// PromSink records measurement telemetry in Prometheus metrics.
type PromSink struct {
	events  *prometheus.CounterVec
	latency *prometheus.HistogramVec
	sources prometheus.Gauge
}

// NewPromSink registers measurement metrics on the default Prometheus
// registerer. The /metrics server is started separately.
func NewPromSink() (coremetrics.MeasurementSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one; collectors that are already
// registered are reused, so repeated construction is safe.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MeasurementSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "measurement_events_total",
		Help: "Total number of measurement algorithm applications",
	}, []string{"algorithm", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "measurement_duration_seconds",
		Help:    "Time spent applying one measurement algorithm",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"algorithm", "outcome"})
	sources := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "measurement_run_sources",
		Help: "Number of sources measured in the last run",
	})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(sources); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sources = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, latency: latency, sources: sources}, nil
}

// RecordMeasurements increments the event counter per application.
func (s *PromSink) RecordMeasurements(events []coremetrics.MeasurementEvent) error {
	for _, e := range events {
		s.events.WithLabelValues(e.Algorithm, e.Outcome).Inc()
	}
	return nil
}

// RecordLatencies feeds the per-algorithm duration histogram.
func (s *PromSink) RecordLatencies(recs []coremetrics.MeasurementLatency) error {
	for _, r := range recs {
		s.latency.WithLabelValues(r.Algorithm, r.Outcome).Observe(r.Latency.Seconds())
	}
	return nil
}

// RecordSourceCount sets the run-size gauge.
func (s *PromSink) RecordSourceCount(n int) error {
	if s.sources != nil {
		s.sources.Set(float64(n))
	}
	return nil
}
