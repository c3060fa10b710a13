//go:build windows

package collector

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var monitoredFilesystems = map[string]struct{}{
	// Windows native
	"NTFS": {},
	"REFS": {}, // Resilient File System (Windows Server)

	// FAT
	"FAT32": {},
	"FAT":   {},
	"EXFAT": {},
}

type driveSource struct{}

// NewVolumeSource walks the drive letters, keeping fixed and removable
// drives with a local filesystem.
func NewVolumeSource() VolumeSource {
	return driveSource{}
}

func (driveSource) Volumes(ctx context.Context) ([]Volume, error) {
	// Bitmask of all available drives
	ret, _, _ := procGetLogicalDrives.Call()
	driveMask := uint32(ret)

	if driveMask == 0 {
		return nil, fmt.Errorf("GetLogicalDrives failed")
	}

	result := make([]Volume, 0, bits.OnesCount32(driveMask))
	var errs []error

	for i := range 26 {
		if driveMask&(1<<i) == 0 {
			continue
		}

		rootPath := string(rune('A'+i)) + ":\\"
		rootPathPtr, _ := windows.UTF16PtrFromString(rootPath)

		// Check drive type - only fixed+removable
		typeRet, _, _ := procGetDriveType.Call(uintptr(unsafe.Pointer(rootPathPtr)))
		driveType := uint32(typeRet)

		if driveType != driveFixed && driveType != driveRemovable {
			continue
		}

		var volNameBuf [256]uint16
		var fsNameBuf [256]uint16

		ret, _, _ := procGetVolumeInformation.Call(
			uintptr(unsafe.Pointer(rootPathPtr)),
			uintptr(unsafe.Pointer(&volNameBuf[0])),
			uintptr(len(volNameBuf)),
			0,
			0,
			0,
			uintptr(unsafe.Pointer(&fsNameBuf[0])),
			uintptr(len(fsNameBuf)),
		)
		if ret == 0 {
			// Empty card readers and optical-style removable slots land here.
			continue
		}

		fsName := strings.ToUpper(decodeWideName(fsNameBuf[:]))

		if _, ok := monitoredFilesystems[fsName]; !ok {
			continue
		}

		var freeBytesAvailable, totalNumberOfBytes, totalNumberOfFreeBytes uint64

		ret, _, _ = procGetDiskFreeSpaceEx.Call(
			uintptr(unsafe.Pointer(rootPathPtr)),
			uintptr(unsafe.Pointer(&freeBytesAvailable)),
			uintptr(unsafe.Pointer(&totalNumberOfBytes)),
			uintptr(unsafe.Pointer(&totalNumberOfFreeBytes)),
		)
		if ret == 0 {
			errs = append(errs, fmt.Errorf("GetDiskFreeSpaceEx %s failed", rootPath))
			continue
		}

		deviceName := decodeWideName(volNameBuf[:])
		if deviceName == "" {
			deviceName = strings.TrimSuffix(rootPath, "\\")
		}

		result = append(result, Volume{
			Mountpoint: rootPath,
			Device:     deviceName,
			FSType:     fsName,
			Total:      totalNumberOfBytes,
			Available:  freeBytesAvailable,
		})
	}

	return result, errors.Join(errs...)
}
