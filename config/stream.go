package config

import (
	"fmt"

	"github.com/skypix/srcmeas/infra/stream"
)

// StreamConfig gates and configures the measurement stream publisher.
type StreamConfig struct {
	Enabled bool          `json:"enabled"`
	MQTT    stream.Config `json:"mqtt"`
}

// SetDefaults applies sane defaults for an enabled stream.
func (c *StreamConfig) SetDefaults() {
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "srcmeas"
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = stream.DefaultTopic
	}
}

// Validate checks mandatory fields when the stream is enabled.
func (c StreamConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("stream enabled but no broker configured")
	}
	return nil
}
