//go:build windows

package collector

import (
	"fmt"
	"syscall"
	"unsafe"
)

// All DXGI pointer access is confined to this file. Callers only ever see
// AdapterDesc values copied out of the description record.

// comObject is the memory layout of any COM interface pointer: the first
// word points at the vtable.
type comObject struct {
	vtbl *[16]uintptr
}

// call invokes the vtable slot with the object as the implicit first argument
// and returns the HRESULT.
func (o *comObject) call(slot int, args ...uintptr) uint32 {
	fn := o.vtbl[slot]
	ret, _, _ := syscall.SyscallN(fn, append([]uintptr{uintptr(unsafe.Pointer(o))}, args...)...)
	return uint32(ret)
}

func (o *comObject) release() {
	if o != nil {
		o.call(vtblRelease)
	}
}

func failed(hr uint32) bool {
	return int32(hr) < 0
}

type dxgiFactory struct {
	obj *comObject
}

// OpenAdapterFactory creates an IDXGIFactory1.
func OpenAdapterFactory() (AdapterFactory, error) {
	if err := procCreateDXGIFactory1.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdapterEnumerationUnsupported, err)
	}

	var obj *comObject
	ret, _, _ := procCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(&iidIDXGIFactory1)),
		uintptr(unsafe.Pointer(&obj)),
	)
	if hr := uint32(ret); failed(hr) || obj == nil {
		return nil, fmt.Errorf("CreateDXGIFactory1 failed: HRESULT 0x%08X", hr)
	}

	return &dxgiFactory{obj: obj}, nil
}

func (f *dxgiFactory) EnumAdapter(index uint32) (AdapterHandle, error) {
	var adapter *comObject
	hr := f.obj.call(vtblEnumAdapters1, uintptr(index), uintptr(unsafe.Pointer(&adapter)))

	switch {
	case hr == dxgiErrorNotFound:
		return nil, ErrAdapterNotFound
	case failed(hr) || adapter == nil:
		return nil, fmt.Errorf("EnumAdapters1(%d) failed: HRESULT 0x%08X", index, hr)
	}

	return &dxgiAdapter{obj: adapter}, nil
}

func (f *dxgiFactory) Release() {
	f.obj.release()
	f.obj = nil
}

type dxgiAdapter struct {
	obj *comObject
}

func (a *dxgiAdapter) Description() (AdapterDesc, error) {
	var desc dxgiAdapterDesc1
	if hr := a.obj.call(vtblGetDesc1, uintptr(unsafe.Pointer(&desc))); failed(hr) {
		return AdapterDesc{}, fmt.Errorf("GetDesc1 failed: HRESULT 0x%08X", hr)
	}

	return AdapterDesc{
		Name:                 decodeWideName(desc.Description[:]),
		Flags:                desc.Flags,
		DedicatedVideoMemory: uint64(desc.DedicatedVideoMemory),
	}, nil
}

func (a *dxgiAdapter) Release() {
	a.obj.release()
	a.obj = nil
}
