package workout

import (
	"time"

	"setbeast/internal/core/model"
)

// Phase is the coarse mode of the state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// State holds all timing data for the current process.
// Durations are whole seconds.
type State struct {
	IsWorkoutActive  bool
	IntervalDuration int
	TimeRemaining    int
	IsTimerRunning   bool
	// WorkoutStartTime is zero while no workout is open.
	WorkoutStartTime time.Time
	WorkoutDuration  int
	TotalSets        int
	SessionID        string
	Settings         model.Settings
}

// InitialState returns the state created at process start.
func InitialState(settings model.Settings) State {
	interval := model.DefaultInterval
	if settings.LastUsedInterval > 0 {
		interval = settings.LastUsedInterval
	}
	return State{
		IntervalDuration: interval,
		TimeRemaining:    interval,
		Settings:         settings.Clone(),
	}
}

// Phase reports the current mode.
func (state State) Phase() Phase {
	switch {
	case !state.IsWorkoutActive:
		return PhaseIdle
	case state.IsTimerRunning:
		return PhaseRunning
	default:
		return PhasePaused
	}
}

// PendingChange reports whether the interval was shortened mid-countdown and
// the new length applies from the next rollover.
func (state State) PendingChange() bool {
	return state.IsWorkoutActive && state.TimeRemaining > state.IntervalDuration
}

// Progress returns the completed fraction of the current countdown.
// The denominator is max(TimeRemaining, IntervalDuration) so that shortening
// the interval never makes the bar jump backwards.
func (state State) Progress() float64 {
	total := state.IntervalDuration
	if state.TimeRemaining > total {
		total = state.TimeRemaining
	}
	if total <= 0 {
		return 0
	}
	progress := float64(total-state.TimeRemaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (state State) clone() State {
	state.Settings = state.Settings.Clone()
	return state
}
