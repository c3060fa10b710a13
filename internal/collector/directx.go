package collector

import (
	"errors"
	"fmt"
	"strings"
)

const (
	directXKey   = `SOFTWARE\Microsoft\DirectX`
	directXValue = "Version"

	UnknownDirectX = "Unknown"
)

// ErrStoreUnavailable is returned by stores on platforms without a system
// configuration store.
var ErrStoreUnavailable = errors.New("system configuration store unavailable")

// ConfigStore reads string values from the system configuration store.
type ConfigStore interface {
	StringValue(path, name string) (string, error)
}

// directXVersions maps the installed-version value to its release label.
var directXVersions = map[string]string{
	"4.09.00.0904":   "DirectX 9.0c",
	"4.10.0000.0904": "DirectX 10",
	"4.11.0000.0904": "DirectX 11",
	"4.12.0000.0904": "DirectX 12",
}

// DirectXLabel maps a raw version string to its label, or "Unknown (<raw>)".
func DirectXLabel(raw string) string {
	if label, ok := directXVersions[raw]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%s)", raw)
}

// DirectXVersion reads the installed DirectX version from store. Any read
// failure yields UnknownDirectX along with the error.
func DirectXVersion(store ConfigStore) (string, error) {
	raw, err := store.StringValue(directXKey, directXValue)
	if err != nil {
		return UnknownDirectX, fmt.Errorf("reading %s\\%s: %w", directXKey, directXValue, err)
	}

	return DirectXLabel(strings.TrimSpace(raw)), nil
}
