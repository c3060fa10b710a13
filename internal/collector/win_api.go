//go:build windows

package collector

import (
	"golang.org/x/sys/windows"
)

const (
	// Disk: Drive Types

	driveUnknown   = 0
	driveNoRootDir = 1
	driveRemovable = 2
	driveFixed     = 3
	driveRemote    = 4
	driveCdrom     = 5
	driveRamdisk   = 6

	// DXGI

	dxgiErrorNotFound = 0x887A0002

	// IDXGIFactory1 vtable: IUnknown(0-2), IDXGIObject(3-6), IDXGIFactory(7-11), IDXGIFactory1(12-13)
	vtblRelease       = 2
	vtblEnumAdapters1 = 12

	// IDXGIAdapter1 vtable: IUnknown(0-2), IDXGIObject(3-6), IDXGIAdapter(7-9), IDXGIAdapter1(10)
	vtblGetDesc1 = 10
)

// IID_IDXGIFactory1 {770aae78-f26f-4dba-a829-253c83d1b387}
var iidIDXGIFactory1 = windows.GUID{
	Data1: 0x770aae78,
	Data2: 0xf26f,
	Data3: 0x4dba,
	Data4: [8]byte{0xa8, 0x29, 0x25, 0x3c, 0x83, 0xd1, 0xb3, 0x87},
}

// --- Struct Definitions ---

// Memory

type memoryStatusEx struct {
	Length               uint32
	MemoryLoad           uint32
	TotalPhys            uint64
	AvailPhys            uint64
	TotalPageFile        uint64
	AvailPageFile        uint64
	TotalVirtual         uint64
	AvailVirtual         uint64
	AvailExtendedVirtual uint64
}

// Graphics

// DXGI_ADAPTER_DESC1
type dxgiAdapterDesc1 struct {
	Description           [128]uint16
	VendorId              uint32
	DeviceId              uint32
	SubSysId              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           windows.LUID
	Flags                 uint32
	_                     uint32 // Padding for 64-bit alignment
}

// --- DLL & Procedure Handles

var (
	// DLLs

	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	dxgi     = windows.NewLazySystemDLL("dxgi.dll")

	// Filesystem/Disk

	procGetLogicalDrives     = kernel32.NewProc("GetLogicalDrives")
	procGetDriveType         = kernel32.NewProc("GetDriveTypeW")
	procGetVolumeInformation = kernel32.NewProc("GetVolumeInformationW")
	procGetDiskFreeSpaceEx   = kernel32.NewProc("GetDiskFreeSpaceExW")

	// Memory

	procGlobalMemoryStatusEx = kernel32.NewProc("GlobalMemoryStatusEx")

	// Graphics

	procCreateDXGIFactory1 = dxgi.NewProc("CreateDXGIFactory1")
)
