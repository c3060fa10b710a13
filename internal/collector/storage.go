package collector

import (
	"context"
)

// Volume is a mounted storage unit with its own capacity figures.
type Volume struct {
	Mountpoint string
	Device     string
	FSType     string
	Total      uint64 // bytes
	Available  uint64 // bytes available to the caller
}

// VolumeSource enumerates the currently mounted volumes. Each call must
// re-read the platform; a non-nil error may accompany a partial list.
type VolumeSource interface {
	Volumes(ctx context.Context) ([]Volume, error)
}

// SumVolumes totals capacity across vols. Used space is accumulated per
// volume and clamped at zero, so used never exceeds total.
func SumVolumes(vols []Volume) (used, total uint64) {
	for _, v := range vols {
		total += v.Total
		used += saturatingSub(v.Total, v.Available)
	}
	return used, total
}

// StorageUsed formats the used space across a freshly read volume list.
func StorageUsed(ctx context.Context, src VolumeSource) (string, error) {
	vols, err := src.Volumes(ctx)
	used, _ := SumVolumes(vols)
	return FormatBytes(used), err
}

// StorageTotal formats the total capacity across a freshly read volume list.
func StorageTotal(ctx context.Context, src VolumeSource) (string, error) {
	vols, err := src.Volumes(ctx)
	_, total := SumVolumes(vols)
	return FormatBytes(total), err
}
