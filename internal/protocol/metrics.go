package protocol

import (
	"time"

	"github.com/google/uuid"
)

const TypeComputerSpecs = "computer_specs"

// Envelope wraps a report with metadata for transmission.
type Envelope struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Hostname  string       `json:"hostname"`
	Data      SystemReport `json:"data"`
}

// NewEnvelope stamps report with a fresh ID and the current UTC time.
func NewEnvelope(hostname string, report SystemReport) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      TypeComputerSpecs,
		Timestamp: time.Now().UTC(),
		Hostname:  hostname,
		Data:      report.Normalize(),
	}
}
