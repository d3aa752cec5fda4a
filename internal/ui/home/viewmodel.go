package home

import (
	"fmt"

	"setbeast/internal/core/workout"
	"setbeast/internal/ui/format"
)

// urgentSeconds is where the countdown starts to pulse.
const urgentSeconds = 10

// ViewModel is everything the main window renders for one state.
type ViewModel struct {
	Clock         string
	Caption       string
	PendingNotice string
	Progress      float64
	Urgent        bool

	ShowStats   bool
	Sets        string
	WorkoutTime string

	WorkoutButton string
	PauseButton   string
	ShowPause     bool
	Status        string
	OptionsTitle  string
}

// NewViewModel derives the main window contents from state.
func NewViewModel(state workout.State) ViewModel {
	view := ViewModel{
		Clock:       format.Clock(state.TimeRemaining),
		Caption:     fmt.Sprintf("%s intervals", format.Clock(state.IntervalDuration)),
		Progress:    state.Progress(),
		ShowStats:   state.IsWorkoutActive,
		Sets:        fmt.Sprintf("%d", state.TotalSets),
		WorkoutTime: format.Clock(state.WorkoutDuration),
	}
	if state.PendingChange() {
		view.PendingNotice = "Next: " + format.Clock(state.IntervalDuration)
	}

	switch state.Phase() {
	case workout.PhaseIdle:
		view.WorkoutButton = "Start Workout"
		view.Status = "Ready to rest"
		view.OptionsTitle = "Quick Setup"
	case workout.PhaseRunning:
		view.WorkoutButton = "End Workout"
		view.PauseButton = "Pause"
		view.ShowPause = true
		view.Urgent = state.TimeRemaining <= urgentSeconds
		view.Status = "Rest " + format.Clock(state.TimeRemaining)
		view.OptionsTitle = "Change Rest Time"
	case workout.PhasePaused:
		view.WorkoutButton = "End Workout"
		view.PauseButton = "Resume"
		view.ShowPause = true
		view.Status = "Paused " + format.Clock(state.TimeRemaining)
		view.OptionsTitle = "Change Rest Time"
	}
	return view
}

// IntervalChangeNeedsConfirm reports whether picking seconds should ask the
// user first. Mid-workout changes only apply to the next rest period.
func IntervalChangeNeedsConfirm(state workout.State, seconds int) bool {
	return state.IsWorkoutActive && seconds != state.IntervalDuration
}
