//go:build !windows

package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

type partitionSource struct{}

// NewVolumeSource lists physical partitions through gopsutil. A device
// mounted at several places (bind mounts, btrfs subvolumes) is counted once.
func NewVolumeSource() VolumeSource {
	return partitionSource{}
}

func (partitionSource) Volumes(ctx context.Context) ([]Volume, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil && len(parts) == 0 {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	errs := []error{err}
	seen := make(map[string]struct{}, len(parts))
	result := make([]Volume, 0, len(parts))

	for _, p := range parts {
		key := p.Device
		if key == "" || key == "none" {
			key = p.Mountpoint
		}
		if _, dup := seen[key]; dup {
			continue
		}

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			errs = append(errs, fmt.Errorf("usage %s: %w", p.Mountpoint, err))
			continue
		}
		seen[key] = struct{}{}

		result = append(result, Volume{
			Mountpoint: p.Mountpoint,
			Device:     p.Device,
			FSType:     p.Fstype,
			Total:      usage.Total,
			Available:  usage.Free,
		})
	}

	return result, errors.Join(errs...)
}
