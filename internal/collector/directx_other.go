//go:build !windows

package collector

type noStore struct{}

// NewConfigStore returns a store that is always unavailable; only Windows
// records DirectX in a configuration store.
func NewConfigStore() ConfigStore {
	return noStore{}
}

func (noStore) StringValue(path, name string) (string, error) {
	return "", ErrStoreUnavailable
}
