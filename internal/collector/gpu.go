package collector

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"unicode/utf16"

	"github.com/sirupsen/logrus"
)

// AdapterFlagSoftware marks a software or virtual adapter (DXGI_ADAPTER_FLAG_SOFTWARE).
const AdapterFlagSoftware uint32 = 0x2

var (
	// ErrAdapterNotFound is returned by EnumAdapter once the index is past the last adapter.
	ErrAdapterNotFound = errors.New("adapter not found")
	// ErrAdapterEnumerationUnsupported means the platform has no adapter factory.
	ErrAdapterEnumerationUnsupported = errors.New("adapter enumeration unsupported on this platform")
)

// AdapterDesc is an owned copy of an adapter's description record.
type AdapterDesc struct {
	Name                 string
	Flags                uint32
	DedicatedVideoMemory uint64 // bytes
}

// Physical reports whether the adapter is a hardware adapter with its own
// video memory.
func (d AdapterDesc) Physical() bool {
	return d.Flags&AdapterFlagSoftware == 0 && d.DedicatedVideoMemory > 0
}

// String renders the adapter as "<name> (<n> <unit>)".
func (d AdapterDesc) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, FormatBytes(d.DedicatedVideoMemory))
}

// AdapterHandle is a live reference to one adapter.
type AdapterHandle interface {
	Description() (AdapterDesc, error)
	Release()
}

// AdapterFactory enumerates adapters by index. EnumAdapter returns
// ErrAdapterNotFound when no adapter exists at index.
type AdapterFactory interface {
	EnumAdapter(index uint32) (AdapterHandle, error)
	Release()
}

// FactoryOpener creates a new adapter factory.
type FactoryOpener func() (AdapterFactory, error)

// Adapters yields adapter descriptions for index 0, 1, ... until the factory
// reports ErrAdapterNotFound. Any other enumeration error also ends the
// sequence and is logged. An adapter whose description cannot be read is
// skipped. Each handle is released before the next index is requested.
func Adapters(f AdapterFactory, log logrus.FieldLogger) iter.Seq[AdapterDesc] {
	return func(yield func(AdapterDesc) bool) {
		for i := uint32(0); i < math.MaxUint32; i++ {
			h, err := f.EnumAdapter(i)
			if err != nil {
				if !errors.Is(err, ErrAdapterNotFound) {
					log.WithError(err).WithField("index", i).Warn("Adapter enumeration stopped")
				}
				return
			}

			desc, err := h.Description()
			h.Release()
			if err != nil {
				log.WithError(err).WithField("index", i).Debug("Skipping adapter without description")
				continue
			}

			if !yield(desc) {
				return
			}
		}
	}
}

// GraphicsAdapters opens a factory and returns the formatted descriptions of
// every physical adapter in enumeration order. The result is empty, never
// nil, when the factory cannot be created.
func GraphicsAdapters(open FactoryOpener, log logrus.FieldLogger) ([]string, error) {
	gpus := []string{}

	f, err := open()
	if err != nil {
		return gpus, fmt.Errorf("creating adapter factory: %w", err)
	}
	defer f.Release()

	for desc := range Adapters(f, log) {
		if !desc.Physical() {
			log.WithFields(logrus.Fields{
				"adapter": desc.Name,
				"flags":   desc.Flags,
				"vram":    desc.DedicatedVideoMemory,
			}).Debug("Filtered non-physical adapter")
			continue
		}
		gpus = append(gpus, desc.String())
	}

	return gpus, nil
}

// decodeWideName converts a fixed-size UTF-16 buffer into a string, stopping
// at the first NUL or the end of the buffer. Unpaired surrogates become U+FFFD.
func decodeWideName(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// sliceFactory serves a pre-collected adapter list through the index-driven
// AdapterFactory contract.
type sliceFactory []AdapterDesc

func (s sliceFactory) EnumAdapter(index uint32) (AdapterHandle, error) {
	if uint64(index) >= uint64(len(s)) {
		return nil, ErrAdapterNotFound
	}
	return sliceHandle(s[index]), nil
}

func (sliceFactory) Release() {}

type sliceHandle AdapterDesc

func (h sliceHandle) Description() (AdapterDesc, error) { return AdapterDesc(h), nil }

func (sliceHandle) Release() {}
