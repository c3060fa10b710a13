//go:build !windows && !linux

package collector

import "context"

// gopsutil covers the remaining platforms on its own.

func longOSVersion(ctx context.Context) string { return "" }

func cpuModel() string { return "" }

func ramTotal() uint64 { return 0 }
