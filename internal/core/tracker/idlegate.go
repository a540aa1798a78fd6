package tracker

import "time"

// ActivitySample is one poll of the desktop state, gathered by the
// scheduler before gate evaluation.
type ActivitySample struct {
	// ForegroundPath is the executable path of the foreground process,
	// empty when the lookup failed or no window is focused.
	ForegroundPath string
	// ForegroundName is the process display name, when known.
	ForegroundName string
	// SelfFocused is true while the tracker's own UI holds focus.
	SelfFocused bool
	// IdleFor is the reported duration since the last user input.
	IdleFor time.Duration
}

// Decision is the gate's per-tick output.
type Decision struct {
	ShouldCount bool
	// IdleStarted is true exactly once per idle span, on the tick idle
	// first reaches the timeout.
	IdleStarted bool
	Idle        bool
	Tracked     bool
}

// IdleGate combines the idle signal with the tracked-program check into a
// single counting decision and owns the one-shot idle latch.
type IdleGate struct {
	timeout   time.Duration
	idleLatch bool
}

// NewIdleGate creates a gate with the given idle timeout. Timeouts under
// one second are raised to one second.
func NewIdleGate(timeout time.Duration) *IdleGate {
	gate := &IdleGate{}
	gate.SetTimeout(timeout)
	return gate
}

// SetTimeout replaces the idle timeout, clamped to at least one second.
func (gate *IdleGate) SetTimeout(timeout time.Duration) {
	if timeout < time.Second {
		timeout = time.Second
	}
	gate.timeout = timeout
}

// Timeout returns the configured idle timeout.
func (gate *IdleGate) Timeout() time.Duration {
	return gate.timeout
}

// Evaluate produces the counting decision for one tick. An empty
// foreground path means "not tracked", never an error. Self focus
// disqualifies counting so the tracker cannot track itself.
func (gate *IdleGate) Evaluate(sample ActivitySample, tracked map[string]string) Decision {
	decision := Decision{}

	if sample.ForegroundPath != "" && !sample.SelfFocused {
		_, decision.Tracked = tracked[sample.ForegroundPath]
	}

	decision.Idle = sample.IdleFor >= gate.timeout
	if decision.Idle {
		if !gate.idleLatch {
			gate.idleLatch = true
			decision.IdleStarted = true
		}
	} else {
		gate.idleLatch = false
	}

	decision.ShouldCount = decision.Tracked && !decision.Idle
	return decision
}
