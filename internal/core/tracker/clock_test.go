package tracker

import "time"

// fakeClock is a manually advanced time source for tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Since(t time.Time) time.Duration {
	return clock.now.Sub(t)
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}
