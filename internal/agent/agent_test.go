package agent

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/cenkalti/backoff.v1"
)

type stubSpecs struct {
	report protocol.SystemReport
}

func (s stubSpecs) ComputerSpecs(context.Context) protocol.SystemReport { return s.report }

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleReport() protocol.SystemReport {
	return protocol.SystemReport{
		OS:           "Windows 10 Pro 22H2",
		CPU:          "Intel(R) Core(TM) i5-8400 CPU @ 2.80GHz",
		RAM:          "8 GB",
		StorageUsed:  "180 GB",
		StorageTotal: "238 GB",
		GPU:          []string{"NVIDIA GeForce GTX 1060 6GB (6 GB)"},
		DirectX:      "DirectX 12",
	}
}

func TestNew(t *testing.T) {
	cfg := Config{
		URL:        "http://localhost:8080/api/v1/reports",
		Hostname:   "test-agent",
		Timeout:    7 * time.Second,
		MaxElapsed: time.Minute,
	}

	a, err := New(cfg, quietLogger(), stubSpecs{})
	require.NoError(t, err)

	assert.Equal(t, cfg, a.Config)
	assert.Equal(t, 7*time.Second, a.Client.Timeout)
	assert.Equal(t, "gzip", a.commonHeaders["Content-Encoding"])
	assert.Equal(t, "application/json", a.commonHeaders["Content-Type"])
}

func TestNew_DefaultsHostname(t *testing.T) {
	want, err := os.Hostname()
	require.NoError(t, err)

	a, err := New(Config{URL: "http://x"}, quietLogger(), stubSpecs{})
	require.NoError(t, err)
	assert.Equal(t, want, a.Config.Hostname)
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{Hostname: "h"}, quietLogger(), stubSpecs{})
	assert.Error(t, err)
}

func TestDefaultBackOff(t *testing.T) {
	tests := []struct {
		name       string
		maxElapsed time.Duration
		wantStop   bool
	}{
		{"zero sends once", 0, true},
		{"negative sends once", -time.Second, true},
		{"positive retries", time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(Config{URL: "http://x", Hostname: "h", MaxElapsed: tt.maxElapsed}, quietLogger(), stubSpecs{})
			require.NoError(t, err)

			b := a.defaultBackOff()
			b.Reset()
			assert.Equal(t, tt.wantStop, b.NextBackOff() == backoff.Stop)

			if exp, ok := b.(*backoff.ExponentialBackOff); ok {
				assert.Equal(t, tt.maxElapsed, exp.MaxElapsedTime)
			}
		})
	}
}
