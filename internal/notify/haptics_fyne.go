package notify

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

// FyneHaptics renders pulses as desktop notifications.
type FyneHaptics struct {
	app fyne.App

	mu     sync.Mutex
	window fyne.Window
}

// NewFyneHaptics creates a pulse renderer. window is focused on heavy pulses
// and may be nil.
func NewFyneHaptics(app fyne.App, window fyne.Window) *FyneHaptics {
	return &FyneHaptics{app: app, window: window}
}

// SetWindow sets the window focused on heavy pulses. It is safe to call
// while pulses are in flight.
func (haptics *FyneHaptics) SetWindow(window fyne.Window) {
	haptics.mu.Lock()
	defer haptics.mu.Unlock()
	haptics.window = window
}

func (haptics *FyneHaptics) focusTarget() fyne.Window {
	haptics.mu.Lock()
	defer haptics.mu.Unlock()
	return haptics.window
}

// Pulse sends a notification for style.
func (haptics *FyneHaptics) Pulse(style PulseStyle) error {
	if haptics.app == nil {
		return fmt.Errorf("pulse: no app")
	}

	var notification *fyne.Notification
	switch style {
	case PulseSuccess:
		notification = fyne.NewNotification("Rest over", "Time for your next set.")
	case PulseHeavy:
		notification = fyne.NewNotification("REST OVER", "Next set now! (sound unavailable)")
	default:
		return fmt.Errorf("pulse: unknown style %d", style)
	}

	window := haptics.focusTarget()
	fyne.Do(func() {
		haptics.app.SendNotification(notification)
		if style == PulseHeavy && window != nil {
			window.RequestFocus()
		}
	})
	return nil
}
