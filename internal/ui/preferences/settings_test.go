package preferences

import (
	"errors"
	"reflect"
	"testing"

	"setbeast/internal/core/model"
)

func TestAddInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		want    []int
	}{
		{name: "inserts sorted", input: "45", want: []int{45, 60, 90, 120, 180, 240}},
		{name: "ignores duplicate", input: "90", want: []int{60, 90, 120, 180, 240}},
		{name: "lower bound", input: "10", want: []int{10, 60, 90, 120, 180, 240}},
		{name: "upper bound", input: " 600 ", want: []int{60, 90, 120, 180, 240, 600}},
		{name: "too short", input: "9", wantErr: ErrIntervalOutOfRange},
		{name: "too long", input: "601", wantErr: ErrIntervalOutOfRange},
		{name: "not a number", input: "1m", wantErr: ErrInvalidInterval},
		{name: "empty", input: "", wantErr: ErrInvalidInterval},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			editor := NewEditor(model.DefaultSettings())
			_, err := editor.AddIntervalText(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}
			if test.wantErr != nil {
				if !reflect.DeepEqual(editor.Settings().IntervalOptions, model.DefaultSettings().IntervalOptions) {
					t.Errorf("rejected input must not change options, got %v", editor.Settings().IntervalOptions)
				}
				return
			}
			if got := editor.Settings().IntervalOptions; !reflect.DeepEqual(got, test.want) {
				t.Errorf("expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestRemoveIntervalKeepsMinimum(t *testing.T) {
	editor := NewEditor(model.DefaultSettings())

	if err := editor.RemoveInterval(60); err != nil {
		t.Fatalf("remove 60: %v", err)
	}
	if err := editor.RemoveInterval(240); err != nil {
		t.Fatalf("remove 240: %v", err)
	}
	if err := editor.RemoveInterval(90); !errors.Is(err, ErrTooFewOptions) {
		t.Fatalf("expected ErrTooFewOptions, got %v", err)
	}
	if got := editor.Settings().IntervalOptions; !reflect.DeepEqual(got, []int{90, 120, 180}) {
		t.Errorf("expected [90 120 180], got %v", got)
	}
}

func TestEditorDoesNotMutateSource(t *testing.T) {
	source := model.DefaultSettings()
	editor := NewEditor(source)
	if err := editor.AddInterval(30); err != nil {
		t.Fatalf("add: %v", err)
	}
	editor.SetVibration(false)

	if len(source.IntervalOptions) != 5 || !source.VibrationEnabled {
		t.Fatalf("source settings changed: %+v", source)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	editor := NewEditor(model.DefaultSettings())

	editor.SetVolume(0)
	if got := editor.Settings().BeepVolume; got != MinVolume {
		t.Errorf("expected %v, got %v", MinVolume, got)
	}
	editor.SetVolume(2)
	if got := editor.Settings().BeepVolume; got != MaxVolume {
		t.Errorf("expected %v, got %v", MaxVolume, got)
	}
	editor.SetVolume(0.55)
	if got := editor.Settings().BeepVolume; got != 0.55 {
		t.Errorf("expected 0.55, got %v", got)
	}
}

func TestPatchExcludesLastUsedInterval(t *testing.T) {
	settings := model.DefaultSettings()
	settings.LastUsedInterval = 120
	editor := NewEditor(settings)
	editor.SetVolume(0.8)

	patch := editor.Patch()
	if patch.LastUsedInterval != nil {
		t.Error("patch must not carry the last used interval")
	}
	if patch.BeepVolume == nil || *patch.BeepVolume != 0.8 {
		t.Errorf("expected volume 0.8 in patch, got %v", patch.BeepVolume)
	}
	if patch.VibrationEnabled == nil || !*patch.VibrationEnabled {
		t.Error("expected vibration in patch")
	}
	if !reflect.DeepEqual(patch.IntervalOptions, settings.IntervalOptions) {
		t.Errorf("expected options in patch, got %v", patch.IntervalOptions)
	}
}
