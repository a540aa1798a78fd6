package tracker

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		total time.Duration
		want  string
	}{
		{0, "00:00:00"},
		{65 * time.Second, "00:01:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{10 * time.Hour, "10:00:00"},
		{MaxDisplay, "99:59:59"},
		{MaxDisplay + time.Hour, "99:59:59"},
		{-time.Second, "00:00:00"},
	}
	for _, test := range tests {
		if got := FormatClock(test.total); got != test.want {
			t.Errorf("FormatClock(%v) = %q, want %q", test.total, got, test.want)
		}
	}
}
