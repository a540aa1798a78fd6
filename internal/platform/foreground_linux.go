package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type foregroundProvider struct {
	xdotoolPath string
}

type unsupportedForegroundProvider struct{}

func newForegroundProvider() ForegroundProvider {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return unsupportedForegroundProvider{}
	}
	return &foregroundProvider{xdotoolPath: path}
}

// ForegroundProgram resolves the active X11 window to its process
// executable via xdotool and /proc.
func (provider *foregroundProvider) ForegroundProgram() (string, string, error) {
	output, err := exec.Command(provider.xdotoolPath, "getactivewindow", "getwindowpid").Output()
	if err != nil {
		// No active window is a normal desktop state, not a failure.
		return "", "", nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil || pid <= 0 {
		return "", "", fmt.Errorf("parse window pid: %w", err)
	}

	exePath, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		// Inaccessible process: counting simply pauses.
		return "", "", nil
	}
	return exePath, filepath.Base(exePath), nil
}

func (unsupportedForegroundProvider) ForegroundProgram() (string, string, error) {
	return "", "", nil
}
