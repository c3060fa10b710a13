//go:build windows

package collector

import (
	"golang.org/x/sys/windows/registry"
)

type registryStore struct {
	root registry.Key
}

// NewConfigStore returns the HKEY_LOCAL_MACHINE registry hive.
func NewConfigStore() ConfigStore {
	return registryStore{root: registry.LOCAL_MACHINE}
}

func (s registryStore) StringValue(path, name string) (string, error) {
	k, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	val, _, err := k.GetStringValue(name)
	if err != nil {
		return "", err
	}

	return val, nil
}
