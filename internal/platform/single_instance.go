package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// Lock represents an acquired single-instance lock. The lock is a bound
// localhost port derived from the app name; binding fails while another
// instance holds it, on every platform, with no stale-file cleanup.
type Lock struct {
	listener net.Listener
	pidFile  string
}

// AcquireLock claims the single-instance lock for the named app.
func AcquireLock(appName string) (*Lock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}

	lock := &Lock{listener: listener}
	lock.pidFile = writePidFile(appName)
	return lock, nil
}

// Release frees the lock.
func (lock *Lock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	if lock.pidFile != "" {
		_ = os.Remove(lock.pidFile)
	}
	return lock.listener.Close()
}

// lockPort maps the app name onto a stable port in the dynamic range.
func lockPort(appName string) int {
	const (
		portBase  = 24000
		portRange = 16000
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return portBase + int(hash.Sum32()%uint32(portRange))
}

// writePidFile records the owning pid next to the app cache for
// diagnostics. Failures are ignored; the port is the real lock.
func writePidFile(appName string) string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(cacheDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	path := filepath.Join(dir, "instance.pid")
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return ""
	}
	return path
}
