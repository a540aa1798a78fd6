package platform

import "errors"

// ErrHotkeysUnsupported indicates global hotkeys are not available on
// this system.
var ErrHotkeysUnsupported = errors.New("global hotkeys unsupported")

// HotkeyManager registers system-wide shortcuts. Callbacks run on the
// manager's own listener goroutine; callers must post into their own
// scheduling context instead of touching shared state directly.
type HotkeyManager interface {
	// Register binds a sequence like "win+shift+=" or "ctrl+alt+f9".
	// Registration failures are surfaced to the caller.
	Register(sequence string, callback func()) error
	// Replace swaps an existing binding for a new sequence. On failure
	// the previous binding is restored on a best-effort basis.
	Replace(oldSequence, newSequence string, callback func()) error
	Close() error
}

// NewHotkeyManager returns the platform hotkey registrar.
func NewHotkeyManager() HotkeyManager {
	return newHotkeyManager()
}
