package platform

import (
	"fmt"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

const foregroundLookupAttempts = 3

type foregroundProvider struct{}

func newForegroundProvider() ForegroundProvider {
	return &foregroundProvider{}
}

// ForegroundProgram resolves the foreground window to its process image
// path. Window focus can be mid-transition when polled, so the lookup
// retries a couple of times before giving up for this tick.
func (provider *foregroundProvider) ForegroundProgram() (string, string, error) {
	var lastErr error
	for attempt := 0; attempt < foregroundLookupAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(50 * time.Millisecond)
		}
		path, err := foregroundImagePath()
		if err != nil {
			lastErr = err
			continue
		}
		if path == "" {
			continue
		}
		return path, filepath.Base(path), nil
	}
	return "", "", lastErr
}

func foregroundImagePath() (string, error) {
	handle, _, _ := procGetForegroundWindow.Call()
	if handle == 0 {
		return "", nil
	}

	var pid uint32
	procGetWindowThreadProcessID.Call(handle, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", fmt.Errorf("foreground window has no process id")
	}

	process, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(process)

	buffer := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buffer))
	if err := windows.QueryFullProcessImageName(process, 0, &buffer[0], &size); err != nil {
		return "", fmt.Errorf("query process image name: %w", err)
	}
	return windows.UTF16ToString(buffer[:size]), nil
}
