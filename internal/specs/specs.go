// Package specs assembles a SystemReport from the platform collectors.
package specs

import (
	"context"
	"fmt"
	"time"

	"github.com/nhdewitt/specsheet/internal/collector"
	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Field labels used in logs and the fallback counter.
const (
	FieldHost         = "host"
	FieldStorageUsed  = "storage_used"
	FieldStorageTotal = "storage_total"
	FieldGPU          = "gpu"
	FieldDirectX      = "directx"
)

// Sources are the information sources queried for every report.
type Sources struct {
	Host     collector.HostSource
	Volumes  collector.VolumeSource
	Adapters collector.FactoryOpener
	Config   collector.ConfigStore
}

// DefaultSources returns the sources for the running platform.
func DefaultSources() Sources {
	return Sources{
		Host:     collector.NewHostSource(),
		Volumes:  collector.NewVolumeSource(),
		Adapters: collector.OpenAdapterFactory,
		Config:   collector.NewConfigStore(),
	}
}

type Service struct {
	log     logrus.FieldLogger
	sources Sources
	metrics *metrics
}

// New returns a Service reading from src. Metrics are registered on reg
// unless it is nil.
func New(log logrus.FieldLogger, reg prometheus.Registerer, src Sources) (*Service, error) {
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}

	return &Service{
		log:     log.WithField("package", "specs"),
		sources: src,
		metrics: m,
	}, nil
}

// ComputerSpecs queries every source in turn and assembles the report.
// It never fails: a source that errors contributes its best-effort value,
// and a source that panics contributes the field's fallback.
func (s *Service) ComputerSpecs(ctx context.Context) protocol.SystemReport {
	start := time.Now()
	defer func() {
		s.metrics.reports.Inc()
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	host := query(s, FieldHost, collector.HostSnapshot{}, func() (collector.HostSnapshot, error) {
		return s.sources.Host.Snapshot(ctx)
	})

	report := protocol.SystemReport{
		OS:  host.OS(),
		CPU: host.CPU(),
		RAM: host.RAM(),
		StorageUsed: query(s, FieldStorageUsed, protocol.FallbackBytes, func() (string, error) {
			return collector.StorageUsed(ctx, s.sources.Volumes)
		}),
		StorageTotal: query(s, FieldStorageTotal, protocol.FallbackBytes, func() (string, error) {
			return collector.StorageTotal(ctx, s.sources.Volumes)
		}),
		GPU: query(s, FieldGPU, []string{}, func() ([]string, error) {
			return collector.GraphicsAdapters(s.sources.Adapters, s.log)
		}),
		DirectX: query(s, FieldDirectX, protocol.FallbackDirectX, func() (string, error) {
			return collector.DirectXVersion(s.sources.Config)
		}),
	}

	s.log.WithFields(logrus.Fields{
		"os":       report.OS,
		"gpus":     len(report.GPU),
		"directx":  report.DirectX,
		"duration": time.Since(start),
	}).Debug("Assembled computer specs")

	return report.Normalize()
}

// query runs fn for one field. Errors are logged and fn's value is kept;
// a panic is recovered and replaced by fallback.
func query[T any](s *Service, field string, fallback T, fn func() (T, error)) (v T) {
	log := s.log.WithField("field", field)

	defer func() {
		if r := recover(); r != nil {
			s.metrics.fallbacks.WithLabelValues(field).Inc()
			log.WithField("panic", fmt.Sprint(r)).Error("Source panicked, using fallback")
			v = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		s.metrics.fallbacks.WithLabelValues(field).Inc()
		log.WithError(err).Warn("Source query failed")
	}

	return v
}
