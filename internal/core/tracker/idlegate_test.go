package tracker

import (
	"testing"
	"time"
)

var testTracked = map[string]string{
	`C:\Windows\explorer.exe`: "explorer.exe",
	"/usr/bin/code":           "code",
}

func TestIdleGateEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		sample ActivitySample
		want   Decision
	}{
		{
			name:   "tracked and active counts",
			sample: ActivitySample{ForegroundPath: "/usr/bin/code", IdleFor: 3 * time.Second},
			want:   Decision{ShouldCount: true, Tracked: true},
		},
		{
			name:   "untracked program does not count",
			sample: ActivitySample{ForegroundPath: "/usr/bin/firefox", IdleFor: 0},
			want:   Decision{},
		},
		{
			name:   "absent foreground does not count",
			sample: ActivitySample{ForegroundPath: "", IdleFor: 0},
			want:   Decision{},
		},
		{
			name:   "own window does not count even when its path is tracked",
			sample: ActivitySample{ForegroundPath: "/usr/bin/code", SelfFocused: true},
			want:   Decision{},
		},
		{
			name:   "idle at exactly the timeout stops counting",
			sample: ActivitySample{ForegroundPath: "/usr/bin/code", IdleFor: 30 * time.Second},
			want:   Decision{Idle: true, IdleStarted: true, Tracked: true},
		},
		{
			name:   "idle just under the timeout still counts",
			sample: ActivitySample{ForegroundPath: "/usr/bin/code", IdleFor: 29 * time.Second},
			want:   Decision{ShouldCount: true, Tracked: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gate := NewIdleGate(30 * time.Second)
			got := gate.Evaluate(test.sample, testTracked)
			if got != test.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestIdleGateLatchFiresOncePerIdleSpan(t *testing.T) {
	gate := NewIdleGate(30 * time.Second)
	sample := ActivitySample{ForegroundPath: "/usr/bin/code"}

	sample.IdleFor = 31 * time.Second
	first := gate.Evaluate(sample, testTracked)
	if !first.IdleStarted {
		t.Fatal("first idle tick must report IdleStarted")
	}

	sample.IdleFor = 32 * time.Second
	second := gate.Evaluate(sample, testTracked)
	if second.IdleStarted {
		t.Fatal("continued idle must not report IdleStarted again")
	}

	// Activity resets the latch; the next idle span fires again.
	sample.IdleFor = 0
	gate.Evaluate(sample, testTracked)
	sample.IdleFor = 30 * time.Second
	third := gate.Evaluate(sample, testTracked)
	if !third.IdleStarted {
		t.Fatal("new idle span must report IdleStarted")
	}
}

func TestIdleGateIdleAppliesRegardlessOfForeground(t *testing.T) {
	gate := NewIdleGate(30 * time.Second)

	decision := gate.Evaluate(ActivitySample{IdleFor: time.Minute}, testTracked)
	if !decision.Idle || !decision.IdleStarted {
		t.Fatalf("Evaluate() = %+v, want idle latch even with no foreground", decision)
	}
}

func TestIdleGateTimeoutClamp(t *testing.T) {
	gate := NewIdleGate(0)
	if got := gate.Timeout(); got != time.Second {
		t.Fatalf("Timeout() = %v, want clamp to 1s", got)
	}
	gate.SetTimeout(500 * time.Millisecond)
	if got := gate.Timeout(); got != time.Second {
		t.Fatalf("Timeout() after SetTimeout = %v, want clamp to 1s", got)
	}
	gate.SetTimeout(45 * time.Second)
	if got := gate.Timeout(); got != 45*time.Second {
		t.Fatalf("Timeout() = %v, want 45s", got)
	}
}
