package tracker

import "time"

// MaxDisplay is the largest total the clock face can show (99:59:59).
const MaxDisplay = (99*3600 + 59*60 + 59) * time.Second

// ThresholdWatcher fires one-shot alerts when the session total crosses
// the goal time or the display maximum. Each latch fires once per
// crossing and is re-derived whenever the total is edited by hand.
type ThresholdWatcher struct {
	goal        time.Duration
	goalReached bool
	maxReached  bool
}

// NewThresholdWatcher creates a watcher. A zero goal disables goal alerts.
func NewThresholdWatcher(goal time.Duration) *ThresholdWatcher {
	if goal < 0 {
		goal = 0
	}
	return &ThresholdWatcher{goal: goal}
}

// Goal returns the configured goal time.
func (watcher *ThresholdWatcher) Goal() time.Duration {
	return watcher.goal
}

// Check observes the total once per tick and reports which alerts fire
// on this tick. Latched thresholds stay silent until rebased.
func (watcher *ThresholdWatcher) Check(total time.Duration) (goalFired, maxFired bool) {
	if watcher.goal > 0 && !watcher.goalReached && total >= watcher.goal {
		watcher.goalReached = true
		goalFired = true
	}
	if !watcher.maxReached && total >= MaxDisplay {
		watcher.maxReached = true
		maxFired = true
	}
	return goalFired, maxFired
}

// Rebase re-derives both latches against an explicitly edited total.
// A new total already past a threshold sets the latch without firing:
// the user asked for that total, nothing was crossed.
func (watcher *ThresholdWatcher) Rebase(total time.Duration) {
	watcher.goalReached = watcher.goal > 0 && total >= watcher.goal
	watcher.maxReached = total >= MaxDisplay
}

// SetGoal replaces the goal time and rebases against the current total.
func (watcher *ThresholdWatcher) SetGoal(goal time.Duration, total time.Duration) {
	if goal < 0 {
		goal = 0
	}
	watcher.goal = goal
	watcher.Rebase(total)
}

// ClampDisplay caps a total at the largest value the clock face can show.
func ClampDisplay(total time.Duration) time.Duration {
	if total > MaxDisplay {
		return MaxDisplay
	}
	if total < 0 {
		return 0
	}
	return total
}
