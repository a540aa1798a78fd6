package model

import "time"

// TrackerConfig contains runtime settings for the tracking engine.
type TrackerConfig struct {
	IdleTimeout  time.Duration
	GoalTime     time.Duration
	PreviousTime time.Duration

	PlaySoundOnIdle          bool
	ShowBorderWhenNotWorking bool

	// TrackedPrograms maps executable paths to display names. Only these
	// programs accumulate time.
	TrackedPrograms map[string]string

	// TimeHistory holds past session totals in seconds, oldest first.
	TimeHistory []int
}

// CloneTracked returns a copy of the tracked-program set so callers can
// hand it out without sharing the engine's map.
func (config TrackerConfig) CloneTracked() map[string]string {
	cloned := make(map[string]string, len(config.TrackedPrograms))
	for path, name := range config.TrackedPrograms {
		cloned[path] = name
	}
	return cloned
}
