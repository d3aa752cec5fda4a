package model

import "sort"

// DefaultInterval is the rest length used when no interval was persisted.
const DefaultInterval = 90

// MinIntervalOptions is the smallest number of selectable rest lengths.
const MinIntervalOptions = 3

// Settings is the persisted user configuration.
type Settings struct {
	BeepVolume       float64
	VibrationEnabled bool
	IntervalOptions  []int
	// LastUsedInterval is zero when no interval was ever selected.
	LastUsedInterval int
}

// DefaultSettings returns default settings for SetBeast.
func DefaultSettings() Settings {
	return Settings{
		BeepVolume:       0.3,
		VibrationEnabled: true,
		IntervalOptions:  []int{60, 90, 120, 180, 240},
	}
}

// Clone returns a copy that does not share the options slice.
func (settings Settings) Clone() Settings {
	settings.IntervalOptions = append([]int(nil), settings.IntervalOptions...)
	return settings
}

// Equal reports whether both records hold the same values.
func (settings Settings) Equal(other Settings) bool {
	if settings.BeepVolume != other.BeepVolume ||
		settings.VibrationEnabled != other.VibrationEnabled ||
		settings.LastUsedInterval != other.LastUsedInterval ||
		len(settings.IntervalOptions) != len(other.IntervalOptions) {
		return false
	}
	for i, value := range settings.IntervalOptions {
		if other.IntervalOptions[i] != value {
			return false
		}
	}
	return true
}

// SettingsPatch carries the fields of a partial settings update.
// Nil fields are left untouched when applied.
type SettingsPatch struct {
	BeepVolume       *float64
	VibrationEnabled *bool
	IntervalOptions  []int
	LastUsedInterval *int
}

// IsEmpty reports whether the patch changes nothing.
func (patch SettingsPatch) IsEmpty() bool {
	return patch.BeepVolume == nil &&
		patch.VibrationEnabled == nil &&
		patch.IntervalOptions == nil &&
		patch.LastUsedInterval == nil
}

// Apply overlays the patch onto settings and returns the result.
func (patch SettingsPatch) Apply(settings Settings) Settings {
	result := settings.Clone()
	if patch.BeepVolume != nil {
		result.BeepVolume = *patch.BeepVolume
	}
	if patch.VibrationEnabled != nil {
		result.VibrationEnabled = *patch.VibrationEnabled
	}
	if patch.IntervalOptions != nil {
		result.IntervalOptions = append([]int(nil), patch.IntervalOptions...)
	}
	if patch.LastUsedInterval != nil {
		result.LastUsedInterval = *patch.LastUsedInterval
	}
	return result
}

// PatchFrom builds a patch that sets every field of settings.
func PatchFrom(settings Settings) SettingsPatch {
	volume := settings.BeepVolume
	vibration := settings.VibrationEnabled
	patch := SettingsPatch{
		BeepVolume:       &volume,
		VibrationEnabled: &vibration,
		IntervalOptions:  append([]int(nil), settings.IntervalOptions...),
	}
	if settings.LastUsedInterval > 0 {
		last := settings.LastUsedInterval
		patch.LastUsedInterval = &last
	}
	return patch
}

// NormalizeIntervals sorts the values ascending, drops duplicates and
// non-positive entries.
func NormalizeIntervals(values []int) []int {
	result := make([]int, 0, len(values))
	for _, value := range values {
		if value > 0 {
			result = append(result, value)
		}
	}
	sort.Ints(result)

	unique := result[:0]
	for i, value := range result {
		if i > 0 && value == result[i-1] {
			continue
		}
		unique = append(unique, value)
	}
	return unique
}
