//go:build !windows

package platform

type hotkeyManager struct{}

func newHotkeyManager() HotkeyManager {
	return hotkeyManager{}
}

func (hotkeyManager) Register(string, func()) error {
	return ErrHotkeysUnsupported
}

func (hotkeyManager) Replace(string, string, func()) error {
	return ErrHotkeysUnsupported
}

func (hotkeyManager) Close() error {
	return nil
}
