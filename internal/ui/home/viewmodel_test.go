package home

import (
	"testing"
	"time"

	"setbeast/internal/core/model"
	"setbeast/internal/core/workout"
)

var start = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func activeState(interval int, ticks int) workout.State {
	state := workout.InitialState(model.DefaultSettings())
	state = workout.Reduce(state, workout.Event{Type: workout.EventSetInterval, Interval: interval})
	state = workout.Reduce(state, workout.Event{Type: workout.EventStartWorkout, At: start})
	for i := 1; i <= ticks; i++ {
		state = workout.Reduce(state, workout.Event{Type: workout.EventTick, At: start.Add(time.Duration(i) * time.Second)})
	}
	return state
}

func TestViewModelIdle(t *testing.T) {
	view := NewViewModel(workout.InitialState(model.DefaultSettings()))

	if view.Clock != "1:30" || view.Caption != "1:30 intervals" {
		t.Errorf("unexpected clock %q caption %q", view.Clock, view.Caption)
	}
	if view.ShowStats || view.ShowPause {
		t.Error("idle view must hide stats and pause")
	}
	if view.WorkoutButton != "Start Workout" || view.OptionsTitle != "Quick Setup" {
		t.Errorf("unexpected idle labels %+v", view)
	}
	if view.PendingNotice != "" || view.Urgent {
		t.Errorf("idle view must not be pending or urgent: %+v", view)
	}
}

func TestViewModelRunningAndUrgent(t *testing.T) {
	view := NewViewModel(activeState(90, 79))
	if view.Clock != "0:11" || view.Urgent {
		t.Errorf("expected 0:11 not urgent, got %q urgent=%v", view.Clock, view.Urgent)
	}
	if view.WorkoutTime != "1:19" || view.Sets != "0" {
		t.Errorf("unexpected stats %q %q", view.WorkoutTime, view.Sets)
	}

	view = NewViewModel(activeState(90, 80))
	if !view.Urgent {
		t.Error("expected urgent at 10 seconds left")
	}
	if view.PauseButton != "Pause" || !view.ShowPause || view.WorkoutButton != "End Workout" {
		t.Errorf("unexpected running labels %+v", view)
	}
}

func TestViewModelPausedIsNeverUrgent(t *testing.T) {
	state := workout.Reduce(activeState(90, 85), workout.Event{Type: workout.EventPauseTimer})
	view := NewViewModel(state)
	if view.Urgent {
		t.Error("paused view must not pulse")
	}
	if view.PauseButton != "Resume" || view.Status != "Paused 0:05" {
		t.Errorf("unexpected paused labels %+v", view)
	}
}

func TestViewModelPendingChange(t *testing.T) {
	state := activeState(90, 50)
	state = workout.Reduce(state, workout.Event{Type: workout.EventSetInterval, Interval: 30})

	view := NewViewModel(state)
	if view.PendingNotice != "Next: 0:30" {
		t.Errorf("expected pending notice, got %q", view.PendingNotice)
	}
	if view.Clock != "0:40" || view.Progress != 0 {
		t.Errorf("expected 0:40 with progress 0, got %q %v", view.Clock, view.Progress)
	}
}

func TestIntervalChangeNeedsConfirm(t *testing.T) {
	idle := workout.InitialState(model.DefaultSettings())
	if IntervalChangeNeedsConfirm(idle, 60) {
		t.Error("idle changes apply immediately")
	}
	active := activeState(90, 1)
	if !IntervalChangeNeedsConfirm(active, 60) {
		t.Error("mid-workout changes need confirmation")
	}
	if IntervalChangeNeedsConfirm(active, 90) {
		t.Error("selecting the current interval needs no confirmation")
	}
}
