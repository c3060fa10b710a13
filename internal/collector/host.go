package collector

import (
	"context"
	"strings"
)

const (
	UnknownOS  = "Unknown OS"
	UnknownCPU = "Unknown CPU"
)

// HostSnapshot is the result of a single refresh of the host information
// subsystem. It is never mutated after the source returns it.
type HostSnapshot struct {
	OSDescription string
	CPUBrands     []string // one entry per reported processor, in platform order
	TotalMemory   uint64   // bytes
}

// HostSource refreshes all host inventory data and returns it as a snapshot.
// A non-nil error means some parts could not be read; the snapshot still
// carries everything that was.
type HostSource interface {
	Snapshot(ctx context.Context) (HostSnapshot, error)
}

// OS returns the operating system description or UnknownOS.
func (s HostSnapshot) OS() string {
	if os := strings.TrimSpace(s.OSDescription); os != "" {
		return os
	}
	return UnknownOS
}

// CPU returns the brand string of the first processor or UnknownCPU.
func (s HostSnapshot) CPU() string {
	if len(s.CPUBrands) == 0 {
		return UnknownCPU
	}
	if brand := strings.TrimSpace(s.CPUBrands[0]); brand != "" {
		return brand
	}
	return UnknownCPU
}

// RAM returns total physical memory formatted by FormatBytes.
func (s HostSnapshot) RAM() string {
	return FormatBytes(s.TotalMemory)
}
