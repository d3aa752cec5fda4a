package tray

import (
	"testing"
	"time"

	"setbeast/internal/core/model"
	"setbeast/internal/core/workout"
)

func TestRenderLabels(t *testing.T) {
	manager := New(nil, Callbacks{})
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	idle := workout.InitialState(model.DefaultSettings())
	manager.Render(idle)
	if manager.startItem.Label != "Start workout" || !manager.pauseItem.Disabled {
		t.Errorf("unexpected idle menu: %q disabled=%v", manager.startItem.Label, manager.pauseItem.Disabled)
	}

	running := workout.Reduce(idle, workout.Event{Type: workout.EventStartWorkout, At: at})
	running = workout.Reduce(running, workout.Event{Type: workout.EventTick, At: at.Add(time.Second)})
	manager.Render(running)
	if manager.statusItem.Label != "Rest 1:29 · sets 0" {
		t.Errorf("unexpected status %q", manager.statusItem.Label)
	}
	if manager.startItem.Label != "End workout" || manager.pauseItem.Disabled || manager.pauseItem.Label != "Pause" {
		t.Errorf("unexpected running menu: %q %q disabled=%v", manager.startItem.Label, manager.pauseItem.Label, manager.pauseItem.Disabled)
	}

	paused := workout.Reduce(running, workout.Event{Type: workout.EventPauseTimer})
	manager.Render(paused)
	if manager.pauseItem.Label != "Resume" || manager.statusItem.Label != "Paused 1:29 · sets 0" {
		t.Errorf("unexpected paused menu: %q %q", manager.pauseItem.Label, manager.statusItem.Label)
	}
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	var started, paused, shown int
	manager := New(nil, Callbacks{
		OnShow:        func() { shown++ },
		OnToggleStart: func() { started++ },
		OnTogglePause: func() { paused++ },
	})

	manager.statusItem.Action()
	manager.startItem.Action()
	manager.pauseItem.Action()

	if shown != 1 || started != 1 || paused != 1 {
		t.Errorf("expected one call each, got show=%d start=%d pause=%d", shown, started, paused)
	}
}
