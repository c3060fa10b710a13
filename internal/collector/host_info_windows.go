//go:build windows

package collector

import (
	"context"
	"strings"
	"unsafe"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"
)

const currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

type win32OperatingSystem struct {
	Caption string
	Version string
}

// longOSVersion prefers the WMI caption; the registry ProductName still
// reads "Windows 10" on Windows 11 hosts.
func longOSVersion(ctx context.Context) string {
	product, display := getPlatformInfo()

	var dst []win32OperatingSystem
	q := wmi.CreateQuery(&dst, "")
	if err := wmi.Query(q, &dst); err == nil && len(dst) > 0 {
		if caption := strings.TrimSpace(strings.TrimPrefix(dst[0].Caption, "Microsoft ")); caption != "" {
			product = caption
		}
	}

	if product == "" {
		return ""
	}
	if display == "" {
		return product
	}
	return product + " " + display
}

func getPlatformInfo() (product, display string) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, currentVersionKey, registry.QUERY_VALUE)
	if err != nil {
		return "", ""
	}
	defer k.Close()

	product, _, _ = k.GetStringValue("ProductName")
	display, _, _ = k.GetStringValue("DisplayVersion")

	return strings.TrimSpace(product), strings.TrimSpace(display)
}

func cpuModel() (cpu string) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`HARDWARE\DESCRIPTION\System\CentralProcessor\0`, registry.QUERY_VALUE)
	if err != nil {
		return cpu
	}
	defer k.Close()

	cpu, _, _ = k.GetStringValue("ProcessorNameString")

	return strings.TrimSpace(cpu)
}

func ramTotal() uint64 {
	var mem memoryStatusEx
	mem.Length = uint32(unsafe.Sizeof(mem))

	ret, _, _ := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&mem)))
	if ret == 0 {
		return 0
	}
	return mem.TotalPhys
}
