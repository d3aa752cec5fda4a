package workout

import "time"

// Reduce applies event to state and returns the next state.
// It performs no I/O. Events that do not apply to the current phase return
// the input unchanged.
func Reduce(state State, event Event) State {
	next := state.clone()

	switch event.Type {
	case EventStartWorkout:
		next.IsWorkoutActive = true
		next.IsTimerRunning = true
		next.WorkoutStartTime = event.At
		next.WorkoutDuration = 0
		next.TotalSets = 0
		next.TimeRemaining = next.IntervalDuration
		next.SessionID = event.SessionID

	case EventEndWorkout:
		next.IsWorkoutActive = false
		next.IsTimerRunning = false
		next.WorkoutStartTime = time.Time{}
		next.WorkoutDuration = 0
		next.TimeRemaining = next.IntervalDuration
		next.SessionID = ""

	case EventPauseTimer:
		if state.Phase() != PhaseRunning {
			return state
		}
		next.IsTimerRunning = false

	case EventResumeTimer:
		if state.Phase() != PhasePaused {
			return state
		}
		next.IsTimerRunning = true

	case EventSetInterval:
		if event.Interval <= 0 {
			return state
		}
		next.IntervalDuration = event.Interval
		if !next.IsWorkoutActive {
			next.TimeRemaining = event.Interval
		}
		next.Settings.LastUsedInterval = event.Interval

	case EventTick:
		if !state.IsWorkoutActive {
			return state
		}
		if elapsed := elapsedSeconds(state.WorkoutStartTime, event.At); elapsed > next.WorkoutDuration {
			next.WorkoutDuration = elapsed
		}
		if !state.IsTimerRunning {
			break
		}
		if next.TimeRemaining <= 1 {
			next.TimeRemaining = next.IntervalDuration
			next.TotalSets++
		} else {
			next.TimeRemaining--
		}

	case EventLoadSettings:
		next.Settings = event.Settings.Clone()
		if interval := event.Settings.LastUsedInterval; interval > 0 {
			next.IntervalDuration = interval
			if !next.IsWorkoutActive {
				next.TimeRemaining = interval
			}
		}

	case EventUpdateSettings:
		next.Settings = event.Patch.Apply(next.Settings)

	default:
		return state
	}

	return next
}

func elapsedSeconds(start, now time.Time) int {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return int(now.Sub(start) / time.Second)
}
