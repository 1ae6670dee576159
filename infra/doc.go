// Package infra contains technical adapters: the zerolog logger, the
// Prometheus and InfluxDB measurement sinks and the MQTT stream publisher.
// These packages depend only on the interfaces defined in the core packages.
package infra
