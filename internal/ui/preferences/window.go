package preferences

import (
	"fmt"
	"strings"

	"setbeast/internal/core/model"
	"setbeast/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines settings window actions.
type Callbacks struct {
	OnSave func(model.SettingsPatch)
	// OnTest plays a beep with the settings being edited.
	OnTest func(model.Settings) error
}

// Window handles the settings UI.
type Window struct {
	window      fyne.Window
	editor      *Editor
	callbacks   Callbacks
	volume      *widget.Slider
	volumeLabel *widget.Label
	vibration   *widget.Check
	intervals   *fyne.Container
	custom      *widget.Entry
}

// New creates a settings window.
func New(app fyne.App, settings model.Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("SetBeast Settings")

	prefs := &Window{
		window:      window,
		editor:      NewEditor(settings),
		callbacks:   callbacks,
		volumeLabel: widget.NewLabel(""),
		intervals:   container.NewGridWithColumns(3),
		custom:      widget.NewEntry(),
	}

	prefs.volume = widget.NewSlider(MinVolume, MaxVolume)
	prefs.volume.Step = 0.05
	prefs.volume.OnChanged = func(value float64) {
		prefs.editor.SetVolume(value)
		prefs.volumeLabel.SetText(format.Percent(prefs.editor.Settings().BeepVolume))
	}

	prefs.vibration = widget.NewCheck("Vibration (additional)", func(checked bool) {
		prefs.editor.SetVibration(checked)
	})

	prefs.custom.SetPlaceHolder("Add custom interval (seconds)")
	prefs.custom.OnSubmitted = func(string) { prefs.handleAdd() }
	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), prefs.handleAdd)
	testButton := widget.NewButtonWithIcon("Test", theme.VolumeUpIcon(), prefs.handleTest)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Audio & Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Test beep sound"), layout.NewSpacer(), testButton),
		container.NewBorder(nil, nil, widget.NewLabel("Beep volume"), prefs.volumeLabel, prefs.volume),
		prefs.vibration,
		widget.NewLabel("The beep plays alongside your music without interrupting it."),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Interval Options", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.intervals,
		container.NewBorder(nil, nil, nil, addButton, prefs.custom),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(420, 460))

	prefs.refresh()
	return prefs
}

// Show displays the window with a fresh copy of settings.
func (prefs *Window) Show(settings model.Settings) {
	prefs.editor = NewEditor(settings)
	prefs.custom.SetText("")
	prefs.refresh()
	prefs.window.Show()
	prefs.window.RequestFocus()
}

func (prefs *Window) refresh() {
	settings := prefs.editor.Settings()

	prefs.volume.Value = settings.BeepVolume
	prefs.volume.Refresh()
	prefs.volumeLabel.SetText(format.Percent(settings.BeepVolume))
	prefs.vibration.SetChecked(settings.VibrationEnabled)

	prefs.intervals.RemoveAll()
	for _, seconds := range settings.IntervalOptions {
		remove := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			prefs.handleRemove(seconds)
		})
		remove.Importance = widget.LowImportance
		prefs.intervals.Add(container.NewHBox(widget.NewLabel(format.Duration(seconds)), remove))
	}
	prefs.intervals.Refresh()
}

func (prefs *Window) handleAdd() {
	if _, err := prefs.editor.AddIntervalText(prefs.custom.Text); err != nil {
		dialog.ShowInformation("Invalid Interval", capitalize(err.Error()), prefs.window)
		return
	}
	prefs.custom.SetText("")
	prefs.refresh()
}

func (prefs *Window) handleRemove(seconds int) {
	if err := prefs.editor.RemoveInterval(seconds); err != nil {
		dialog.ShowInformation("Cannot Remove", capitalize(err.Error()), prefs.window)
		return
	}
	prefs.refresh()
}

func (prefs *Window) handleTest() {
	if prefs.callbacks.OnTest == nil {
		return
	}
	settings := prefs.editor.Settings()
	go func() {
		err := prefs.callbacks.OnTest(settings)
		fyne.Do(func() {
			if err != nil {
				dialog.ShowInformation("Audio Test Error", fmt.Sprintf("Test failed: %v", err), prefs.window)
				return
			}
			dialog.ShowInformation("Audio Test", "Beep test completed! Did you hear the sound?\n\nCheck your volume or try adjusting the beep volume.", prefs.window)
		})
	}()
}

func (prefs *Window) handleSave() {
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(prefs.editor.Patch())
	}
	prefs.window.Hide()
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
