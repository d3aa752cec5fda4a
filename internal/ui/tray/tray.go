package tray

import (
	"fmt"

	"setbeast/internal/core/workout"
	"setbeast/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleStart func()
	OnTogglePause func()
	OnSettings    func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	lastLabels [3]string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready to rest", func() {
		call(manager.callbacks.OnShow)
	})
	manager.startItem = fyne.NewMenuItem("Start workout", func() {
		call(manager.callbacks.OnToggleStart)
	})
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		call(manager.callbacks.OnTogglePause)
	})
	manager.pauseItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Render updates the menu from state. Call it on the fyne thread.
func (manager *Manager) Render(state workout.State) {
	status := "Ready to rest"
	start := "Start workout"
	pause := "Pause"

	switch state.Phase() {
	case workout.PhaseRunning:
		status = fmt.Sprintf("Rest %s · sets %d", format.Clock(state.TimeRemaining), state.TotalSets)
		start = "End workout"
	case workout.PhasePaused:
		status = fmt.Sprintf("Paused %s · sets %d", format.Clock(state.TimeRemaining), state.TotalSets)
		start = "End workout"
		pause = "Resume"
	}

	labels := [3]string{status, start, pause}
	if labels == manager.lastLabels {
		return
	}
	manager.lastLabels = labels

	manager.statusItem.Label = status
	manager.startItem.Label = start
	manager.pauseItem.Label = pause
	manager.pauseItem.Disabled = !state.IsWorkoutActive
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("SetBeast",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		fyne.NewMenuItem("Settings", func() {
			call(manager.callbacks.OnSettings)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
