package tracker

import "time"

// Clock supplies the time source for the engine. Production code uses
// SystemClock; tests inject a controllable fake.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock wraps the time package.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}
