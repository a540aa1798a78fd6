package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "settings.yaml"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.Tracker.IdleTimeout != DefaultIdleTimeoutSeconds*time.Second {
		t.Errorf("IdleTimeout = %v, want %ds", settings.Tracker.IdleTimeout, DefaultIdleTimeoutSeconds)
	}
	if settings.Tracker.GoalTime != 0 {
		t.Errorf("GoalTime = %v, want 0", settings.Tracker.GoalTime)
	}
	if !settings.Tracker.PlaySoundOnIdle {
		t.Error("PlaySoundOnIdle default = false, want true")
	}
	if !settings.Tracker.ShowBorderWhenNotWorking {
		t.Error("ShowBorderWhenNotWorking default = false, want true")
	}
	if settings.AddProgramHotkey != DefaultAddProgramHotkey {
		t.Errorf("AddProgramHotkey = %q, want %q", settings.AddProgramHotkey, DefaultAddProgramHotkey)
	}
	if settings.RemoveProgramHotkey != DefaultRemoveProgramHotkey {
		t.Errorf("RemoveProgramHotkey = %q, want %q", settings.RemoveProgramHotkey, DefaultRemoveProgramHotkey)
	}

	// Load must not create the file.
	if _, statErr := os.Stat(store.path); !os.IsNotExist(statErr) {
		t.Error("Load() of a missing file must not create it")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := DefaultSettings()
	saved.Tracker.IdleTimeout = 45 * time.Second
	saved.Tracker.GoalTime = 2 * time.Hour
	saved.Tracker.PreviousTime = 90 * time.Second
	saved.Tracker.PlaySoundOnIdle = false
	saved.Tracker.TrackedPrograms = map[string]string{"/usr/bin/code": "code"}
	saved.Tracker.TimeHistory = []int{10, 20, 30}
	saved.AddProgramHotkey = "ctrl+alt+a"

	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Tracker.IdleTimeout != 45*time.Second {
		t.Errorf("IdleTimeout = %v, want 45s", loaded.Tracker.IdleTimeout)
	}
	if loaded.Tracker.GoalTime != 2*time.Hour {
		t.Errorf("GoalTime = %v, want 2h", loaded.Tracker.GoalTime)
	}
	if loaded.Tracker.PreviousTime != 90*time.Second {
		t.Errorf("PreviousTime = %v, want 90s", loaded.Tracker.PreviousTime)
	}
	if loaded.Tracker.PlaySoundOnIdle {
		t.Error("PlaySoundOnIdle = true, want false")
	}
	if got, want := loaded.Tracker.TrackedPrograms, saved.Tracker.TrackedPrograms; !reflect.DeepEqual(got, want) {
		t.Errorf("TrackedPrograms = %v, want %v", got, want)
	}
	if got, want := loaded.Tracker.TimeHistory, []int{10, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("TimeHistory = %v, want %v", got, want)
	}
	if loaded.AddProgramHotkey != "ctrl+alt+a" {
		t.Errorf("AddProgramHotkey = %q, want ctrl+alt+a", loaded.AddProgramHotkey)
	}
}

func TestLoadCorruptFileRewritesDefaults(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.path, []byte("{{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Tracker.IdleTimeout != DefaultIdleTimeoutSeconds*time.Second {
		t.Errorf("IdleTimeout = %v, want default", settings.Tracker.IdleTimeout)
	}

	// The corrupt file is replaced with a parseable one.
	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !reflect.DeepEqual(reloaded.Tracker.TimeHistory, settings.Tracker.TimeHistory) {
		t.Error("rewritten file does not round-trip")
	}
}

func TestLoadCorrectsMalformedFields(t *testing.T) {
	store := newTestStore(t)
	raw := `idle_timeout_seconds: -10
goal_time_seconds: -1
previous_time_seconds: -60
time_history: [0, -5, 100, 200]
`
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Tracker.IdleTimeout != DefaultIdleTimeoutSeconds*time.Second {
		t.Errorf("IdleTimeout = %v, want default", settings.Tracker.IdleTimeout)
	}
	if settings.Tracker.GoalTime != 0 {
		t.Errorf("GoalTime = %v, want 0", settings.Tracker.GoalTime)
	}
	if settings.Tracker.PreviousTime != 0 {
		t.Errorf("PreviousTime = %v, want 0", settings.Tracker.PreviousTime)
	}
	if got, want := settings.Tracker.TimeHistory, []int{100, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("TimeHistory = %v, want %v", got, want)
	}

	// Corrections are persisted back so the file self-heals.
	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if reloaded.Tracker.IdleTimeout != DefaultIdleTimeoutSeconds*time.Second {
		t.Error("corrected idle timeout was not persisted")
	}
}

func TestTargetedSettersPreserveOtherFields(t *testing.T) {
	store := newTestStore(t)

	initial := DefaultSettings()
	initial.Tracker.GoalTime = time.Hour
	initial.Tracker.TrackedPrograms = map[string]string{"/usr/bin/code": "code"}
	if err := store.Save(initial); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.SavePreviousTime(120); err != nil {
		t.Fatalf("SavePreviousTime() error = %v", err)
	}
	if err := store.SaveIdleTimeout(60); err != nil {
		t.Fatalf("SaveIdleTimeout() error = %v", err)
	}
	if err := store.SaveHistory([]int{120}); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}
	if err := store.SavePlaySoundOnIdle(false); err != nil {
		t.Fatalf("SavePlaySoundOnIdle() error = %v", err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Tracker.PreviousTime != 2*time.Minute {
		t.Errorf("PreviousTime = %v, want 2m", settings.Tracker.PreviousTime)
	}
	if settings.Tracker.IdleTimeout != time.Minute {
		t.Errorf("IdleTimeout = %v, want 1m", settings.Tracker.IdleTimeout)
	}
	if got, want := settings.Tracker.TimeHistory, []int{120}; !reflect.DeepEqual(got, want) {
		t.Errorf("TimeHistory = %v, want %v", got, want)
	}
	if settings.Tracker.PlaySoundOnIdle {
		t.Error("PlaySoundOnIdle = true, want false")
	}
	// Untouched fields survive the targeted writes.
	if settings.Tracker.GoalTime != time.Hour {
		t.Errorf("GoalTime = %v, want 1h", settings.Tracker.GoalTime)
	}
	if got, want := settings.Tracker.TrackedPrograms, initial.Tracker.TrackedPrograms; !reflect.DeepEqual(got, want) {
		t.Errorf("TrackedPrograms = %v, want %v", got, want)
	}
}

func TestSaveHistoryKeepsNewestFive(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveHistory([]int{1, 2, 3, 4, 5, 6, 7}); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := settings.Tracker.TimeHistory, []int{3, 4, 5, 6, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("TimeHistory = %v, want %v", got, want)
	}
}

func TestSaveHotkeysIgnoresEmptyBindings(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveHotkeys("ctrl+alt+a", ""); err != nil {
		t.Fatalf("SaveHotkeys() error = %v", err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.AddProgramHotkey != "ctrl+alt+a" {
		t.Errorf("AddProgramHotkey = %q, want ctrl+alt+a", settings.AddProgramHotkey)
	}
	if settings.RemoveProgramHotkey != DefaultRemoveProgramHotkey {
		t.Errorf("RemoveProgramHotkey = %q, want default", settings.RemoveProgramHotkey)
	}
}
