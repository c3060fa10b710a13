//go:build linux

package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/gpu"
)

var sysfsPCIDevices = "/sys/bus/pci/devices"

// Paravirtual and emulated display drivers. These expose a PCI function but
// no real GPU behind it.
var virtualDisplayDrivers = map[string]struct{}{
	"virtio-pci": {},
	"virtio_gpu": {},
	"qxl":        {},
	"bochs-drm":  {},
	"bochs":      {},
	"cirrus":     {},
	"vmwgfx":     {},
	"hyperv_drm": {},
	"vboxvideo":  {},
}

// OpenAdapterFactory snapshots the PCI display controllers once and serves
// them by index.
func OpenAdapterFactory() (AdapterFactory, error) {
	info, err := ghw.GPU(ghw.WithDisableWarnings())
	if err != nil {
		return nil, fmt.Errorf("reading graphics cards: %w", err)
	}

	adapters := make(sliceFactory, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		adapters = append(adapters, describeCard(card, sysfsPCIDevices))
	}

	return adapters, nil
}

func describeCard(card *gpu.GraphicsCard, root string) AdapterDesc {
	desc := AdapterDesc{
		Name:                 card.Address,
		DedicatedVideoMemory: readVRAM(root, card.Address),
	}

	dev := card.DeviceInfo
	if dev == nil {
		return desc
	}

	var parts []string
	if dev.Vendor != nil && dev.Vendor.Name != "" {
		parts = append(parts, dev.Vendor.Name)
	}
	if dev.Product != nil && dev.Product.Name != "" {
		parts = append(parts, dev.Product.Name)
	}
	if len(parts) > 0 {
		desc.Name = strings.Join(parts, " ")
	}

	if _, ok := virtualDisplayDrivers[dev.Driver]; ok {
		desc.Flags |= AdapterFlagSoftware
	}

	return desc
}

// readVRAM returns the amdgpu-reported VRAM size for a PCI address, or 0 when
// the driver does not publish it.
func readVRAM(root, address string) uint64 {
	if address == "" {
		return 0
	}

	data, err := os.ReadFile(filepath.Join(root, address, "mem_info_vram_total"))
	if err != nil {
		return 0
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
