package tracker

import "time"

// Accumulator owns the session total. It is a two-state machine: paused
// (no run mark) or running (mark set). Elapsed time is measured between
// the mark and the clock rather than counted per tick, so uneven tick
// spacing never loses or double-counts seconds.
type Accumulator struct {
	clock       Clock
	accumulated time.Duration
	running     bool
	mark        time.Time
}

// NewAccumulator creates a paused accumulator seeded with a restored total.
func NewAccumulator(clock Clock, restored time.Duration) *Accumulator {
	if restored < 0 {
		restored = 0
	}
	return &Accumulator{clock: clock, accumulated: restored}
}

// Apply drives the state machine with the per-tick counting decision.
// Matching state is a no-op, so calling it every tick is safe.
func (acc *Accumulator) Apply(shouldCount bool) {
	if shouldCount == acc.running {
		return
	}
	if shouldCount {
		acc.mark = acc.clock.Now()
		acc.running = true
		return
	}
	acc.accumulated += acc.clock.Since(acc.mark)
	acc.running = false
	acc.mark = time.Time{}
}

// Total returns the session total including any in-flight running segment.
// It never mutates state, so it is safe to call mid-tick.
func (acc *Accumulator) Total() time.Duration {
	total := acc.accumulated
	if acc.running {
		total += acc.clock.Since(acc.mark)
	}
	if total < 0 {
		return 0
	}
	return total
}

// Running reports whether a run segment is open.
func (acc *Accumulator) Running() bool {
	return acc.running
}

// Reset forces pause and zeroes the total. A zero total is left untouched;
// the caller records the pre-reset total into history first.
func (acc *Accumulator) Reset() {
	if acc.Total() <= 0 {
		return
	}
	acc.accumulated = 0
	acc.running = false
	acc.mark = time.Time{}
}

// SetTotal replaces the total for manual edits and history resume,
// discarding any in-flight running segment.
func (acc *Accumulator) SetTotal(total time.Duration) {
	if total < 0 {
		total = 0
	}
	acc.accumulated = total
	acc.running = false
	acc.mark = time.Time{}
}
