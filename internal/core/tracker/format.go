package tracker

import (
	"fmt"
	"time"
)

// HiddenClock is shown when the user has opted to hide the timer.
const HiddenClock = "--:--:--"

// FormatClock renders a total as HH:MM:SS, clamped to 99:59:59.
func FormatClock(total time.Duration) string {
	total = ClampDisplay(total)
	seconds := int(total / time.Second)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
