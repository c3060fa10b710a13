//go:build !windows && !linux

package collector

// OpenAdapterFactory has no implementation on this platform.
func OpenAdapterFactory() (AdapterFactory, error) {
	return nil, ErrAdapterEnumerationUnsupported
}
