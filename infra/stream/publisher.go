// Package stream publishes per-source measurement records to downstream
// consumers over MQTT.
package stream

import (
	"sync"

	"github.com/skypix/srcmeas/core/model"
)

// Publisher delivers one measurement record to the stream.
type Publisher interface {
	PublishMeasurement(rec model.SourceRecord) error
}

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Records []model.SourceRecord
	Err     error
	mu      sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishMeasurement records the measurement or returns the configured error.
func (m *MockPublisher) PublishMeasurement(rec model.SourceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, rec)
	return nil
}

// Published returns a copy of the records published so far.
func (m *MockPublisher) Published() []model.SourceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SourceRecord, len(m.Records))
	copy(out, m.Records)
	return out
}
