package metrics

import "github.com/skypix/srcmeas/core/measure"

var sinkRegistry = measure.NewRegistry[measure.Constructor[MeasurementSink]]()

// RegisterSink adds a sink constructor identified by type name. Builtin
// sinks register from infra/metrics on package init.
func RegisterSink(name string, ctor measure.Constructor[MeasurementSink]) int {
	return sinkRegistry.Register(name, ctor)
}

// NewSink creates a MeasurementSink from the provided configuration. No
// configured sinks yields a NopSink; several fan out through a MultiSink.
func NewSink(cfgs []SinkConfig) (MeasurementSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	sinks := make([]MeasurementSink, len(cfgs))
	for i, c := range cfgs {
		s, err := measure.Create(sinkRegistry, c.Type, c.Conf)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}
