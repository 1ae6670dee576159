package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skypix/srcmeas/core/measure"
	coremetrics "github.com/skypix/srcmeas/core/metrics"
)

// init registers the built-in measurement sinks.
func init() {
	coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.MeasurementSink, error) {
		return coremetrics.NopSink{}, nil
	})

	coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.MeasurementSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.MeasurementSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := measure.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
