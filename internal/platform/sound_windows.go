package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	winmm          = windows.NewLazySystemDLL("winmm.dll")
	procPlaySoundW = winmm.NewProc("PlaySoundW")
)

const (
	sndAsync    = 0x0001
	sndFilename = 0x00020000
)

func playSoundFile(path string) error {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encode sound path: %w", err)
	}
	result, _, callErr := procPlaySoundW.Call(uintptr(unsafe.Pointer(pathPtr)), 0, sndFilename|sndAsync)
	if result == 0 {
		return fmt.Errorf("play sound: %w", callErr)
	}
	return nil
}
