package platform

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	"unsafe"
)

var (
	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
	procVkKeyScanW       = user32.NewProc("VkKeyScanW")
)

const (
	modAlt     = 0x0001
	modControl = 0x0002
	modShift   = 0x0004
	modWin     = 0x0008

	wmHotkey     = 0x0312
	pmRemove     = 0x0001
	pollInterval = 25 * time.Millisecond
)

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

type hotkeyBinding struct {
	sequence string
	mods     uintptr
	vk       uintptr
	callback func()
}

type hotkeyRequest struct {
	register *hotkeyBinding
	remove   string // sequence to unregister
	reply    chan error
}

// hotkeyManager runs a dedicated OS thread: RegisterHotKey only delivers
// WM_HOTKEY to the thread that registered, so both registration and the
// message pump live on the same locked goroutine.
type hotkeyManager struct {
	requests chan hotkeyRequest
	done     chan struct{}
	bindings map[uintptr]*hotkeyBinding // id -> binding
	nextID   uintptr
}

func newHotkeyManager() HotkeyManager {
	manager := &hotkeyManager{
		requests: make(chan hotkeyRequest),
		done:     make(chan struct{}),
		bindings: map[uintptr]*hotkeyBinding{},
		nextID:   1,
	}
	go manager.pump()
	return manager
}

func (manager *hotkeyManager) Register(sequence string, callback func()) error {
	mods, vk, err := parseHotkey(sequence)
	if err != nil {
		return err
	}
	reply := make(chan error, 1)
	manager.requests <- hotkeyRequest{
		register: &hotkeyBinding{sequence: sequence, mods: mods, vk: vk, callback: callback},
		reply:    reply,
	}
	return <-reply
}

func (manager *hotkeyManager) Replace(oldSequence, newSequence string, callback func()) error {
	mods, vk, err := parseHotkey(newSequence)
	if err != nil {
		return fmt.Errorf("invalid hotkey %q: %w", newSequence, err)
	}

	reply := make(chan error, 1)
	manager.requests <- hotkeyRequest{remove: oldSequence, reply: reply}
	<-reply

	reply = make(chan error, 1)
	manager.requests <- hotkeyRequest{
		register: &hotkeyBinding{sequence: newSequence, mods: mods, vk: vk, callback: callback},
		reply:    reply,
	}
	if err := <-reply; err != nil {
		// Best-effort restore of the previous binding.
		if oldMods, oldVK, parseErr := parseHotkey(oldSequence); parseErr == nil {
			restore := make(chan error, 1)
			manager.requests <- hotkeyRequest{
				register: &hotkeyBinding{sequence: oldSequence, mods: oldMods, vk: oldVK, callback: callback},
				reply:    restore,
			}
			<-restore
		}
		return err
	}
	return nil
}

func (manager *hotkeyManager) Close() error {
	close(manager.done)
	return nil
}

func (manager *hotkeyManager) pump() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-manager.done:
			for id := range manager.bindings {
				procUnregisterHotKey.Call(0, id)
			}
			return
		case request := <-manager.requests:
			manager.handleRequest(request)
		case <-ticker.C:
			manager.drainMessages()
		}
	}
}

func (manager *hotkeyManager) handleRequest(request hotkeyRequest) {
	if request.remove != "" {
		for id, binding := range manager.bindings {
			if binding.sequence == request.remove {
				procUnregisterHotKey.Call(0, id)
				delete(manager.bindings, id)
				break
			}
		}
		request.reply <- nil
		return
	}

	binding := request.register
	id := manager.nextID
	manager.nextID++
	result, _, callErr := procRegisterHotKey.Call(0, id, binding.mods, binding.vk)
	if result == 0 {
		request.reply <- fmt.Errorf("register hotkey %q: %w", binding.sequence, callErr)
		return
	}
	manager.bindings[id] = binding
	request.reply <- nil
}

func (manager *hotkeyManager) drainMessages() {
	var msg winMsg
	for {
		result, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, pmRemove)
		if result == 0 {
			return
		}
		if msg.message == wmHotkey {
			if binding, ok := manager.bindings[msg.wParam]; ok && binding.callback != nil {
				binding.callback()
			}
		}
	}
}

var hotkeyMods = map[string]uintptr{
	"ctrl":  modControl,
	"alt":   modAlt,
	"shift": modShift,
	"win":   modWin,
}

var namedKeys = map[string]uintptr{
	"space":     0x20,
	"enter":     0x0D,
	"return":    0x0D,
	"tab":       0x09,
	"esc":       0x1B,
	"escape":    0x1B,
	"backspace": 0x08,
	"delete":    0x2E,
	"insert":    0x2D,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pagedown":  0x22,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"minus":     0xBD,
	"-":         0xBD,
	"equals":    0xBB,
	"=":         0xBB,
	"comma":     0xBC,
	"period":    0xBE,
}

// parseHotkey translates a "mod+mod+key" sequence into RegisterHotKey
// arguments. Single printable characters go through VkKeyScanW so the
// layout decides their virtual key.
func parseHotkey(sequence string) (mods uintptr, vk uintptr, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(sequence)), "+")
	keyName := parts[len(parts)-1]
	for _, part := range parts[:len(parts)-1] {
		mod, ok := hotkeyMods[part]
		if !ok {
			return 0, 0, fmt.Errorf("unknown modifier %q in %q", part, sequence)
		}
		mods |= mod
	}

	if named, ok := namedKeys[keyName]; ok {
		return mods, named, nil
	}
	if len(keyName) == 2 || len(keyName) == 3 {
		if keyName[0] == 'f' {
			if number := parseFunctionKey(keyName[1:]); number > 0 {
				return mods, uintptr(0x70 + number - 1), nil // VK_F1
			}
		}
	}
	if len(keyName) == 1 {
		char := rune(keyName[0])
		if char >= 'a' && char <= 'z' {
			return mods, uintptr(char - 'a' + 'A'), nil
		}
		if char >= '0' && char <= '9' {
			return mods, uintptr(char), nil
		}
		scan, _, _ := procVkKeyScanW.Call(uintptr(char))
		if low := scan & 0xFF; low != 0xFF {
			return mods, low, nil
		}
	}
	return 0, 0, fmt.Errorf("unable to interpret key %q in %q", keyName, sequence)
}

func parseFunctionKey(digits string) int {
	number := 0
	for _, digit := range digits {
		if digit < '0' || digit > '9' {
			return 0
		}
		number = number*10 + int(digit-'0')
	}
	if number < 1 || number > 24 {
		return 0
	}
	return number
}
