package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/stefior/WORK-WORK/internal/core/model"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Documented defaults, substituted for malformed or missing values.
const (
	DefaultIdleTimeoutSeconds  = 30
	DefaultGoalTimeSeconds     = 0
	DefaultAddProgramHotkey    = "win+shift+="
	DefaultRemoveProgramHotkey = "win+shift+-"
)

const historyCapacity = 5

type yamlSettings struct {
	IdleTimeoutSeconds   int               `yaml:"idle_timeout_seconds"`
	GoalTimeSeconds      int               `yaml:"goal_time_seconds"`
	PreviousTimeSeconds  int               `yaml:"previous_time_seconds"`
	PlaySoundOnIdle      *bool             `yaml:"play_sound_on_idle"`
	ShowBorderNotWorking *bool             `yaml:"show_border_when_not_working"`
	AddProgramHotkey     string            `yaml:"add_program_hotkey"`
	RemoveProgramHotkey  string            `yaml:"remove_program_hotkey"`
	TrackedPrograms      map[string]string `yaml:"tracked_programs"`
	TimeHistory          []int             `yaml:"time_history"`
}

// Settings is the full persisted application state.
type Settings struct {
	Tracker             model.TrackerConfig
	AddProgramHotkey    string
	RemoveProgramHotkey string
}

// DefaultSettings returns the documented defaults. New installs on
// Windows track explorer.exe so the timer does something out of the box.
func DefaultSettings() Settings {
	tracked := map[string]string{}
	if runtime.GOOS == "windows" {
		tracked[`C:\Windows\explorer.exe`] = "explorer.exe"
	}
	return Settings{
		Tracker: model.TrackerConfig{
			IdleTimeout:              DefaultIdleTimeoutSeconds * time.Second,
			GoalTime:                 DefaultGoalTimeSeconds,
			PreviousTime:             0,
			PlaySoundOnIdle:          true,
			ShowBorderWhenNotWorking: true,
			TrackedPrograms:          tracked,
			TimeHistory:              nil,
		},
		AddProgramHotkey:    DefaultAddProgramHotkey,
		RemoveProgramHotkey: DefaultRemoveProgramHotkey,
	}
}

// Store reads and writes the settings file. Targeted setters issue a
// load-modify-write so unrelated fields are never lost; a mutex keeps
// writes from interleaving.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore resolves the settings path under the OS config directory.
func NewStore(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &Store{path: filepath.Join(configDir, appName, settingsFileName)}, nil
}

// NewStoreAt creates a store over an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads settings, substituting documented defaults for missing or
// malformed fields. Corrected values are persisted back so the file
// self-heals; a missing file is not an error.
func (store *Store) Load() (Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings := DefaultSettings()
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		// Corrupt file: fall back to defaults and rewrite them.
		if writeErr := store.writeLocked(settings); writeErr != nil {
			return settings, fmt.Errorf("rewrite corrupt settings: %w", writeErr)
		}
		return settings, nil
	}

	corrected := applyYamlSettings(&settings, fileData)
	if corrected {
		if err := store.writeLocked(settings); err != nil {
			return settings, fmt.Errorf("persist corrected settings: %w", err)
		}
	}
	return settings, nil
}

// Save writes the full settings state.
func (store *Store) Save(settings Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writeLocked(settings)
}

// SavePreviousTime persists the last session total.
func (store *Store) SavePreviousTime(seconds int) error {
	return store.update(func(settings *Settings) {
		if seconds < 0 {
			seconds = 0
		}
		settings.Tracker.PreviousTime = time.Duration(seconds) * time.Second
	})
}

// SaveHistory persists session history, oldest first.
func (store *Store) SaveHistory(entries []int) error {
	return store.update(func(settings *Settings) {
		settings.Tracker.TimeHistory = sanitizeHistory(entries)
	})
}

// SaveIdleTimeout persists the idle timeout.
func (store *Store) SaveIdleTimeout(seconds int) error {
	return store.update(func(settings *Settings) {
		if seconds < 1 {
			seconds = DefaultIdleTimeoutSeconds
		}
		settings.Tracker.IdleTimeout = time.Duration(seconds) * time.Second
	})
}

// SaveGoalTime persists the goal time. Zero disables the goal.
func (store *Store) SaveGoalTime(seconds int) error {
	return store.update(func(settings *Settings) {
		if seconds < 0 {
			seconds = 0
		}
		settings.Tracker.GoalTime = time.Duration(seconds) * time.Second
	})
}

// SavePlaySoundOnIdle persists the idle-sound toggle.
func (store *Store) SavePlaySoundOnIdle(enabled bool) error {
	return store.update(func(settings *Settings) {
		settings.Tracker.PlaySoundOnIdle = enabled
	})
}

// SaveShowBorder persists the not-working border toggle.
func (store *Store) SaveShowBorder(enabled bool) error {
	return store.update(func(settings *Settings) {
		settings.Tracker.ShowBorderWhenNotWorking = enabled
	})
}

// SaveTrackedPrograms persists the tracked-program set.
func (store *Store) SaveTrackedPrograms(programs map[string]string) error {
	return store.update(func(settings *Settings) {
		cloned := make(map[string]string, len(programs))
		for path, name := range programs {
			cloned[path] = name
		}
		settings.Tracker.TrackedPrograms = cloned
	})
}

// SaveHotkeys persists the hotkey bindings.
func (store *Store) SaveHotkeys(addHotkey, removeHotkey string) error {
	return store.update(func(settings *Settings) {
		if addHotkey != "" {
			settings.AddProgramHotkey = addHotkey
		}
		if removeHotkey != "" {
			settings.RemoveProgramHotkey = removeHotkey
		}
	})
}

func (store *Store) update(mutate func(*Settings)) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings := DefaultSettings()
	rawData, err := os.ReadFile(store.path)
	if err == nil {
		var fileData yamlSettings
		if yaml.Unmarshal(rawData, &fileData) == nil {
			applyYamlSettings(&settings, fileData)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read settings file: %w", err)
	}

	mutate(&settings)
	return store.writeLocked(settings)
}

func (store *Store) writeLocked(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundOn := settings.Tracker.PlaySoundOnIdle
	borderOn := settings.Tracker.ShowBorderWhenNotWorking
	fileData := yamlSettings{
		IdleTimeoutSeconds:   int(settings.Tracker.IdleTimeout / time.Second),
		GoalTimeSeconds:      int(settings.Tracker.GoalTime / time.Second),
		PreviousTimeSeconds:  int(settings.Tracker.PreviousTime / time.Second),
		PlaySoundOnIdle:      &soundOn,
		ShowBorderNotWorking: &borderOn,
		AddProgramHotkey:     settings.AddProgramHotkey,
		RemoveProgramHotkey:  settings.RemoveProgramHotkey,
		TrackedPrograms:      settings.Tracker.TrackedPrograms,
		TimeHistory:          settings.Tracker.TimeHistory,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// applyYamlSettings copies validated file values onto settings and
// reports whether any field had to be corrected.
func applyYamlSettings(settings *Settings, fileData yamlSettings) bool {
	corrected := false

	if fileData.IdleTimeoutSeconds >= 1 {
		settings.Tracker.IdleTimeout = time.Duration(fileData.IdleTimeoutSeconds) * time.Second
	} else if fileData.IdleTimeoutSeconds != 0 {
		corrected = true
	}

	if fileData.GoalTimeSeconds >= 0 {
		settings.Tracker.GoalTime = time.Duration(fileData.GoalTimeSeconds) * time.Second
	} else {
		corrected = true
	}

	if fileData.PreviousTimeSeconds >= 0 {
		settings.Tracker.PreviousTime = time.Duration(fileData.PreviousTimeSeconds) * time.Second
	} else {
		corrected = true
	}

	if fileData.PlaySoundOnIdle != nil {
		settings.Tracker.PlaySoundOnIdle = *fileData.PlaySoundOnIdle
	}
	if fileData.ShowBorderNotWorking != nil {
		settings.Tracker.ShowBorderWhenNotWorking = *fileData.ShowBorderNotWorking
	}

	if fileData.AddProgramHotkey != "" {
		settings.AddProgramHotkey = fileData.AddProgramHotkey
	}
	if fileData.RemoveProgramHotkey != "" {
		settings.RemoveProgramHotkey = fileData.RemoveProgramHotkey
	}

	if len(fileData.TrackedPrograms) > 0 {
		settings.Tracker.TrackedPrograms = fileData.TrackedPrograms
	}

	sanitized := sanitizeHistory(fileData.TimeHistory)
	if len(sanitized) != len(fileData.TimeHistory) && len(fileData.TimeHistory) > 0 {
		corrected = true
	}
	settings.Tracker.TimeHistory = sanitized

	return corrected
}

// sanitizeHistory drops non-positive entries and keeps the newest five.
func sanitizeHistory(entries []int) []int {
	filtered := make([]int, 0, len(entries))
	for _, seconds := range entries {
		if seconds > 0 {
			filtered = append(filtered, seconds)
		}
	}
	if len(filtered) > historyCapacity {
		filtered = filtered[len(filtered)-historyCapacity:]
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
