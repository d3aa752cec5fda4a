package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"setbeast/internal/core/model"
)

// Limits enforced before settings reach the timer.
const (
	MinCustomInterval = 10
	MaxCustomInterval = 600
	MinVolume         = 0.1
	MaxVolume         = 1.0
)

var (
	// ErrInvalidInterval is returned for input that is not a whole number.
	ErrInvalidInterval = errors.New("interval must be a whole number of seconds")
	// ErrIntervalOutOfRange is returned for intervals outside 10s-600s.
	ErrIntervalOutOfRange = fmt.Errorf("interval must be between %d seconds and 10 minutes (%d seconds)", MinCustomInterval, MaxCustomInterval)
	// ErrTooFewOptions is returned when removing would leave fewer than three options.
	ErrTooFewOptions = fmt.Errorf("you must have at least %d interval options", model.MinIntervalOptions)
)

// Editor holds a local copy of the settings while the window is open.
type Editor struct {
	settings model.Settings
}

// NewEditor starts editing a copy of settings.
func NewEditor(settings model.Settings) *Editor {
	settings = settings.Clone()
	settings.IntervalOptions = model.NormalizeIntervals(settings.IntervalOptions)
	return &Editor{settings: settings}
}

// Settings returns the edited copy.
func (editor *Editor) Settings() model.Settings {
	return editor.settings.Clone()
}

// AddIntervalText parses user input and adds it as an option.
func (editor *Editor) AddIntervalText(text string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, ErrInvalidInterval
	}
	return seconds, editor.AddInterval(seconds)
}

// AddInterval inserts seconds into the sorted option list.
func (editor *Editor) AddInterval(seconds int) error {
	if seconds < MinCustomInterval || seconds > MaxCustomInterval {
		return ErrIntervalOutOfRange
	}
	options := append(editor.settings.IntervalOptions, seconds)
	editor.settings.IntervalOptions = model.NormalizeIntervals(options)
	return nil
}

// RemoveInterval drops seconds from the options unless only the minimum
// number of options remain.
func (editor *Editor) RemoveInterval(seconds int) error {
	if len(editor.settings.IntervalOptions) <= model.MinIntervalOptions {
		return ErrTooFewOptions
	}
	options := make([]int, 0, len(editor.settings.IntervalOptions))
	for _, value := range editor.settings.IntervalOptions {
		if value != seconds {
			options = append(options, value)
		}
	}
	editor.settings.IntervalOptions = options
	return nil
}

// SetVolume stores volume clamped to the slider range.
func (editor *Editor) SetVolume(volume float64) {
	if volume < MinVolume {
		volume = MinVolume
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}
	editor.settings.BeepVolume = volume
}

// SetVibration toggles the pulse.
func (editor *Editor) SetVibration(enabled bool) {
	editor.settings.VibrationEnabled = enabled
}

// Patch returns the fields the window edits. The last used interval is owned
// by the timer and is never part of it.
func (editor *Editor) Patch() model.SettingsPatch {
	patch := model.PatchFrom(editor.settings)
	patch.LastUsedInterval = nil
	return patch
}
