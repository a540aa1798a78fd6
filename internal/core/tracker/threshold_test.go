package tracker

import (
	"testing"
	"time"
)

func TestThresholdWatcherGoalFiresOnce(t *testing.T) {
	watcher := NewThresholdWatcher(time.Hour)

	if goalFired, _ := watcher.Check(59 * time.Minute); goalFired {
		t.Fatal("goal fired below threshold")
	}
	if goalFired, _ := watcher.Check(time.Hour); !goalFired {
		t.Fatal("goal did not fire at threshold")
	}
	if goalFired, _ := watcher.Check(time.Hour + time.Second); goalFired {
		t.Fatal("goal fired twice")
	}
}

func TestThresholdWatcherZeroGoalNeverFires(t *testing.T) {
	watcher := NewThresholdWatcher(0)
	if goalFired, _ := watcher.Check(200 * time.Hour); goalFired {
		t.Fatal("disabled goal fired")
	}
}

func TestThresholdWatcherMaxLatch(t *testing.T) {
	watcher := NewThresholdWatcher(0)

	if _, maxFired := watcher.Check(MaxDisplay - time.Second); maxFired {
		t.Fatal("max fired below cap")
	}
	if _, maxFired := watcher.Check(MaxDisplay); !maxFired {
		t.Fatal("max did not fire at cap")
	}
	if _, maxFired := watcher.Check(MaxDisplay + time.Hour); maxFired {
		t.Fatal("max fired twice")
	}
}

func TestThresholdWatcherRebaseSilencesEditedTotal(t *testing.T) {
	watcher := NewThresholdWatcher(time.Hour)

	// Loading a total already past the goal is not a crossing.
	watcher.Rebase(2 * time.Hour)
	if goalFired, _ := watcher.Check(2*time.Hour + time.Second); goalFired {
		t.Fatal("goal fired after rebase past threshold")
	}

	// Rebasing below the goal re-arms it.
	watcher.Rebase(0)
	if goalFired, _ := watcher.Check(time.Hour); !goalFired {
		t.Fatal("goal did not fire after rebase below threshold")
	}
}

func TestThresholdWatcherSetGoal(t *testing.T) {
	watcher := NewThresholdWatcher(time.Hour)
	watcher.Check(time.Hour) // latch the first goal

	// Raising the goal above the current total re-arms the alert.
	watcher.SetGoal(2*time.Hour, time.Hour)
	if goalFired, _ := watcher.Check(2 * time.Hour); !goalFired {
		t.Fatal("raised goal did not fire")
	}

	// Lowering the goal under the current total latches without firing.
	watcher.SetGoal(time.Minute, 2*time.Hour)
	if goalFired, _ := watcher.Check(2*time.Hour + time.Second); goalFired {
		t.Fatal("lowered goal fired for an already-passed total")
	}
}

func TestClampDisplay(t *testing.T) {
	tests := []struct {
		name  string
		total time.Duration
		want  time.Duration
	}{
		{"negative clamps to zero", -time.Second, 0},
		{"in range passes through", 42 * time.Minute, 42 * time.Minute},
		{"cap passes through", MaxDisplay, MaxDisplay},
		{"over cap clamps", MaxDisplay + time.Hour, MaxDisplay},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ClampDisplay(test.total); got != test.want {
				t.Errorf("ClampDisplay(%v) = %v, want %v", test.total, got, test.want)
			}
		})
	}
}
