package metrics

// SinkConfig selects a sink implementation by type name and carries its raw
// settings.
type SinkConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Config defines the metrics surface of a run.
type Config struct {
	Sinks []SinkConfig `json:"sinks"`
	// PrometheusAddr, when set, serves /metrics on this address.
	PrometheusAddr string `json:"prometheus_addr"`
}
