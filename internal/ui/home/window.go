package home

import (
	"fmt"
	"image/color"

	"setbeast/internal/core/workout"
	"setbeast/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controller is the subset of the workout machine the window drives.
type Controller interface {
	StartWorkout()
	EndWorkout()
	PauseTimer()
	ResumeTimer()
	SetIntervalDuration(seconds int)
	Snapshot() workout.State
}

// Callbacks defines actions handled outside the window.
type Callbacks struct {
	OnSettings func()
	// OnHistory returns a one-line summary shown while idle.
	OnHistory func() string
}

var (
	clockColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	accentColor = color.NRGBA{R: 255, G: 107, B: 53, A: 255}
)

// Window is the main timer screen.
type Window struct {
	window     fyne.Window
	controller Controller
	callbacks  Callbacks
	state      workout.State

	clock         *canvas.Text
	caption       *widget.Label
	pending       *widget.Label
	progress      *widget.ProgressBar
	stats         *fyne.Container
	sets          *widget.Label
	workoutTime   *widget.Label
	workoutButton *widget.Button
	pauseButton   *widget.Button
	optionsTitle  *widget.Label
	options       *fyne.Container
	history       *widget.Label
	optionsKey    string
}

// New creates the main window.
func New(app fyne.App, controller Controller, callbacks Callbacks) *Window {
	window := app.NewWindow("SetBeast")

	home := &Window{
		window:       window,
		controller:   controller,
		callbacks:    callbacks,
		caption:      widget.NewLabel(""),
		pending:      widget.NewLabel(""),
		progress:     widget.NewProgressBar(),
		sets:         widget.NewLabelWithStyle("0", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		workoutTime:  widget.NewLabelWithStyle("0:00", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		optionsTitle: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		options:      container.NewGridWithColumns(5),
		history:      widget.NewLabel(""),
	}

	home.clock = canvas.NewText("0:00", clockColor)
	home.clock.Alignment = fyne.TextAlignCenter
	home.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	home.clock.TextSize = 64

	home.caption.Alignment = fyne.TextAlignCenter
	home.pending.Alignment = fyne.TextAlignCenter
	home.pending.Importance = widget.WarningImportance
	home.progress.TextFormatter = func() string { return "" }
	home.history.Alignment = fyne.TextAlignCenter
	home.history.Wrapping = fyne.TextWrapWord

	home.workoutButton = widget.NewButton("", home.handleWorkout)
	home.workoutButton.Importance = widget.HighImportance
	home.pauseButton = widget.NewButton("", home.handlePause)

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if home.callbacks.OnSettings != nil {
			home.callbacks.OnSettings()
		}
	})
	header := container.NewBorder(nil, nil, nil, settingsButton,
		widget.NewLabelWithStyle("SetBeast", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	home.stats = container.NewGridWithColumns(2,
		container.NewVBox(widget.NewLabelWithStyle("Sets Completed", fyne.TextAlignCenter, fyne.TextStyle{}), home.sets),
		container.NewVBox(widget.NewLabelWithStyle("Workout Time", fyne.TextAlignCenter, fyne.TextStyle{}), home.workoutTime),
	)

	timer := container.NewVBox(home.clock, home.caption, home.pending, home.progress)
	controls := container.NewVBox(
		container.NewGridWithColumns(2, home.workoutButton, home.pauseButton),
		home.optionsTitle,
		home.options,
	)

	content := container.NewVBox(header, home.stats, layout.NewSpacer(), timer, layout.NewSpacer(), controls, home.history)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 560))

	home.Render(controller.Snapshot())
	return home
}

// Window exposes the underlying fyne window.
func (home *Window) Window() fyne.Window {
	return home.window
}

// Show displays the main window.
func (home *Window) Show() {
	home.window.Show()
	home.window.RequestFocus()
}

// Render updates every widget from state. Call it on the fyne thread.
func (home *Window) Render(state workout.State) {
	home.state = state
	view := NewViewModel(state)

	home.clock.Text = view.Clock
	home.clock.Color = clockColor
	if view.Urgent && state.TimeRemaining%2 == 0 {
		home.clock.Color = accentColor
	}
	home.clock.Refresh()

	home.caption.SetText(view.Caption)
	home.pending.SetText(view.PendingNotice)
	if view.PendingNotice == "" {
		home.pending.Hide()
	} else {
		home.pending.Show()
	}
	home.progress.SetValue(view.Progress)

	home.sets.SetText(view.Sets)
	home.workoutTime.SetText(view.WorkoutTime)
	if view.ShowStats {
		home.stats.Show()
	} else {
		home.stats.Hide()
	}

	home.workoutButton.SetText(view.WorkoutButton)
	home.pauseButton.SetText(view.PauseButton)
	if view.ShowPause {
		home.pauseButton.Show()
	} else {
		home.pauseButton.Hide()
	}

	home.optionsTitle.SetText(view.OptionsTitle)
	home.renderOptions(state)

	if state.IsWorkoutActive || home.callbacks.OnHistory == nil {
		home.history.Hide()
	} else {
		home.history.SetText(home.callbacks.OnHistory())
		home.history.Show()
	}
}

// RefreshHistory re-reads the idle summary.
func (home *Window) RefreshHistory() {
	home.Render(home.state)
}

func (home *Window) renderOptions(state workout.State) {
	key := fmt.Sprint(state.Settings.IntervalOptions, state.IntervalDuration)
	if key == home.optionsKey {
		return
	}
	home.optionsKey = key

	home.options.RemoveAll()
	for _, seconds := range state.Settings.IntervalOptions {
		button := widget.NewButton(format.Duration(seconds), func() {
			home.handleInterval(seconds)
		})
		if seconds == state.IntervalDuration {
			button.Importance = widget.HighImportance
		}
		home.options.Add(button)
	}
	home.options.Refresh()
}

func (home *Window) handleWorkout() {
	if !home.state.IsWorkoutActive {
		home.controller.StartWorkout()
		return
	}
	dialog.ShowConfirm("End Workout", "Are you sure you want to end your workout session?", func(confirmed bool) {
		if confirmed {
			home.controller.EndWorkout()
		}
	}, home.window)
}

func (home *Window) handlePause() {
	switch home.state.Phase() {
	case workout.PhaseRunning:
		home.controller.PauseTimer()
	case workout.PhasePaused:
		home.controller.ResumeTimer()
	}
}

func (home *Window) handleInterval(seconds int) {
	if !IntervalChangeNeedsConfirm(home.state, seconds) {
		home.controller.SetIntervalDuration(seconds)
		return
	}
	message := fmt.Sprintf("Change rest time to %s?\n\nThis will apply to your next rest period.", format.Duration(seconds))
	dialog.ShowConfirm("Change Rest Interval", message, func(confirmed bool) {
		if confirmed {
			home.controller.SetIntervalDuration(seconds)
		}
	}, home.window)
}
