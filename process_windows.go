//go:build windows

package main

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var civ5ProcessNames = []string{"CivilizationV.exe", "CivilizationV_DX11.exe", "CivilizationV_Tablet.exe"}

// isProcessRunning walks the process snapshot looking for an exact
// executable name match.
func isProcessRunning(processName string) bool {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return false
	}
	defer windows.CloseHandle(snapshot)

	var procEntry windows.ProcessEntry32
	procEntry.Size = uint32(unsafe.Sizeof(procEntry))

	if err := windows.Process32First(snapshot, &procEntry); err != nil {
		return false
	}

	for {
		exeName := windows.UTF16ToString(procEntry.ExeFile[:])
		if exeName == processName {
			return true
		}

		if err := windows.Process32Next(snapshot, &procEntry); err != nil {
			break
		}
	}

	return false
}
