package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type hostSource struct{}

// NewHostSource returns the platform host inventory source. OS description,
// CPU brand and total memory each try the platform-native query first where
// gopsutil is known to be weak, then gopsutil.
func NewHostSource() HostSource {
	return hostSource{}
}

func (hostSource) Snapshot(ctx context.Context) (HostSnapshot, error) {
	var (
		snap HostSnapshot
		errs []error
	)

	snap.OSDescription = longOSVersion(ctx)
	if snap.OSDescription == "" {
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("host info: %w", err))
		} else {
			snap.OSDescription = describePlatform(info.Platform, info.PlatformVersion)
		}
	}

	cpus, err := cpu.InfoWithContext(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	}
	for _, c := range cpus {
		snap.CPUBrands = append(snap.CPUBrands, c.ModelName)
	}
	if len(snap.CPUBrands) == 0 || strings.TrimSpace(snap.CPUBrands[0]) == "" {
		if model := cpuModel(); model != "" {
			snap.CPUBrands = []string{model}
		}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("virtual memory: %w", err))
	} else {
		snap.TotalMemory = vm.Total
	}
	if snap.TotalMemory == 0 {
		snap.TotalMemory = ramTotal()
	}

	return snap, errors.Join(errs...)
}

// describePlatform turns gopsutil's platform fields into a display string.
func describePlatform(platform, version string) string {
	switch platform {
	case "":
		return ""
	case "darwin":
		platform = "macOS"
	}

	if version == "" {
		return platform
	}
	return platform + " " + version
}
