//go:build windows

package platform

import "testing"

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		sequence string
		wantMods uintptr
		wantVK   uintptr
		wantErr  bool
	}{
		{sequence: "win+shift+=", wantMods: modWin | modShift, wantVK: 0xBB},
		{sequence: "win+shift+-", wantMods: modWin | modShift, wantVK: 0xBD},
		{sequence: "ctrl+alt+a", wantMods: modControl | modAlt, wantVK: 'A'},
		{sequence: "shift+f9", wantMods: modShift, wantVK: 0x78},
		{sequence: "ctrl+f12", wantMods: modControl, wantVK: 0x7B},
		{sequence: "alt+space", wantMods: modAlt, wantVK: 0x20},
		{sequence: "win+5", wantMods: modWin, wantVK: '5'},
		{sequence: "CTRL+SHIFT+Z", wantMods: modControl | modShift, wantVK: 'Z'},
		{sequence: "bogus+a", wantErr: true},
		{sequence: "ctrl+f99", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.sequence, func(t *testing.T) {
			mods, vk, err := parseHotkey(test.sequence)
			if test.wantErr {
				if err == nil {
					t.Fatalf("parseHotkey(%q) succeeded, want error", test.sequence)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHotkey(%q) error = %v", test.sequence, err)
			}
			if mods != test.wantMods || vk != test.wantVK {
				t.Errorf("parseHotkey(%q) = (%#x, %#x), want (%#x, %#x)",
					test.sequence, mods, vk, test.wantMods, test.wantVK)
			}
		})
	}
}
