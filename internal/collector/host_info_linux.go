//go:build linux

package collector

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/tklauser/go-sysconf"
	"github.com/zcalusic/sysinfo"
)

func longOSVersion(ctx context.Context) string {
	var si sysinfo.SysInfo
	si.GetSysInfo()

	if name := strings.TrimSpace(si.OS.Name); name != "" {
		return name
	}

	f, err := os.Open("/etc/os-release")
	if err != nil {
		return ""
	}
	defer f.Close()

	return osReleaseDescription(f)
}

// osReleaseDescription reads an os-release file and returns PRETTY_NAME,
// or NAME plus VERSION_ID when PRETTY_NAME is absent.
func osReleaseDescription(r io.Reader) string {
	var pretty, name, version string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), `"'`))

		switch key {
		case "PRETTY_NAME":
			pretty = value
		case "NAME":
			name = value
		case "VERSION_ID":
			version = value
		}
	}

	switch {
	case pretty != "":
		return pretty
	case name != "" && version != "":
		return name + " " + version
	default:
		return name
	}
}

func cpuModel() string {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return ""
	}
	defer f.Close()

	return getCPUModelFrom(f)
}

func getCPUModelFrom(r io.Reader) string {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "model name") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1])
			}
		}
	}

	return ""
}

func ramTotal() uint64 {
	pages, err := sysconf.Sysconf(sysconf.SC_PHYS_PAGES)
	if err != nil || pages <= 0 {
		return 0
	}
	size, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
	if err != nil || size <= 0 {
		return 0
	}

	return uint64(pages) * uint64(size)
}
