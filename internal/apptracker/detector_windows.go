//go:build windows

package apptracker

import (
	"context"
	"path/filepath"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procGetWindowThreadPID  = user32.NewProc("GetWindowThreadProcessId")
)

// NativeDetector samples the foreground window via the Win32 user32 API,
// the built-in backend on Windows when no script detector is configured.
type NativeDetector struct{}

// Sample reports the foreground window's owning process name and title.
func (NativeDetector) Sample(context.Context) (string, string, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", "", false
	}

	var pid uint32
	procGetWindowThreadPID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	title, ok := windowTitle(hwnd)
	if !ok {
		return "", "", false
	}

	app, err := processName(pid)
	if err != nil {
		return "", "", false
	}
	return app, title, true
}

func windowTitle(hwnd uintptr) (string, bool) {
	buf := make([]uint16, 256)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", false
	}
	return syscall.UTF16ToString(buf[:n]), true
}

func processName(pid uint32) (string, error) {
	const queryLimitedInfo = 0x1000
	handle, err := windows.OpenProcess(queryLimitedInfo, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(handle)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return filepath.Base(syscall.UTF16ToString(buf[:size])), nil
}
