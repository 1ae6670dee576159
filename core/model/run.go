package model

import (
	"time"

	"github.com/google/uuid"
)

// RunInfo identifies one measurement run. Every record and telemetry event
// emitted during the run carries its ID.
type RunInfo struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"` // free-form label for the measured field
	StartedAt time.Time `json:"started_at"`
}

// NewRunInfo stamps a fresh run with a random ID.
func NewRunInfo(field string) RunInfo {
	return RunInfo{
		ID:        uuid.NewString(),
		Field:     field,
		StartedAt: time.Now().UTC(),
	}
}
