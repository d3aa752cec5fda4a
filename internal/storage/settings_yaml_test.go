package storage

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"setbeast/internal/core/model"
	"setbeast/internal/core/workout"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewSettingsStore(t.TempDir())

	settings, found, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for a missing file")
	}
	if !settings.Equal(model.DefaultSettings()) {
		t.Errorf("expected defaults, got %+v", settings)
	}
}

func TestSaveMergesPartialPatches(t *testing.T) {
	store := NewSettingsStore(t.TempDir())

	volume := 0.7
	if err := store.Save(model.SettingsPatch{BeepVolume: &volume, IntervalOptions: []int{120, 30, 60, 30}}); err != nil {
		t.Fatalf("save volume: %v", err)
	}
	last := 60
	if err := store.Save(model.SettingsPatch{LastUsedInterval: &last}); err != nil {
		t.Fatalf("save interval: %v", err)
	}

	settings, found, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected stored record")
	}
	if settings.BeepVolume != 0.7 {
		t.Errorf("expected volume preserved at 0.7, got %v", settings.BeepVolume)
	}
	if !reflect.DeepEqual(settings.IntervalOptions, []int{30, 60, 120}) {
		t.Errorf("expected normalized options, got %v", settings.IntervalOptions)
	}
	if settings.LastUsedInterval != 60 {
		t.Errorf("expected last used 60, got %d", settings.LastUsedInterval)
	}
	if !settings.VibrationEnabled {
		t.Error("expected default vibration for a field never saved")
	}
}

func TestSavePreservesUnrelatedKeys(t *testing.T) {
	dir := t.TempDir()
	store := NewSettingsStore(dir)
	initial := "theme: dark\nworkoutSettings:\n  beep_volume: 0.5\n  custom_sound: gong\n"
	if err := os.WriteFile(store.Path(), []byte(initial), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	vibration := false
	if err := store.Save(model.SettingsPatch{VibrationEnabled: &vibration}); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(raw)
	for _, want := range []string{"theme: dark", "custom_sound: gong", "beep_volume: 0.5", "vibration_enabled: false"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in saved file:\n%s", want, content)
		}
	}
}

func TestLoadRejectsInvalidFields(t *testing.T) {
	store := NewSettingsStore(t.TempDir())
	content := "workoutSettings:\n  beep_volume: 3.5\n  interval_options: [60, 60, -10]\n  last_used_interval: -4\n  vibration_enabled: false\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	settings, found, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected record found")
	}
	defaults := model.DefaultSettings()
	if settings.BeepVolume != defaults.BeepVolume {
		t.Errorf("expected default volume for out-of-range value, got %v", settings.BeepVolume)
	}
	if !reflect.DeepEqual(settings.IntervalOptions, defaults.IntervalOptions) {
		t.Errorf("expected default options when fewer than 3 remain, got %v", settings.IntervalOptions)
	}
	if settings.LastUsedInterval != 0 {
		t.Errorf("expected no last used interval, got %d", settings.LastUsedInterval)
	}
	if settings.VibrationEnabled {
		t.Error("expected vibration disabled from file")
	}
}

func TestLoadCorruptFileReturnsDefaultsAndError(t *testing.T) {
	store := NewSettingsStore(t.TempDir())
	if err := os.WriteFile(store.Path(), []byte("workoutSettings: [unclosed"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	settings, found, err := store.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if found || !settings.Equal(model.DefaultSettings()) {
		t.Errorf("expected defaults on error, got found=%v %+v", found, settings)
	}

	volume := 0.4
	if err := store.Save(model.SettingsPatch{BeepVolume: &volume}); err == nil {
		t.Error("save must not overwrite a file it cannot parse")
	}
}

func TestSaveEmptyPatchWritesNothing(t *testing.T) {
	store := NewSettingsStore(t.TempDir())
	if err := store.Save(model.SettingsPatch{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat err %v", err)
	}
}

func TestWatchSettingsReloadsExternalEdits(t *testing.T) {
	store := NewSettingsStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan model.Settings, 4)
	if err := WatchSettings(ctx, store, func(settings model.Settings) {
		changes <- settings
	}); err != nil {
		t.Fatalf("watch: %v", err)
	}

	last := 240
	if err := store.Save(model.SettingsPatch{LastUsedInterval: &last}); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case settings := <-changes:
		if settings.LastUsedInterval != 240 {
			t.Errorf("expected reloaded interval 240, got %d", settings.LastUsedInterval)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("settings change was not observed")
	}
}

func TestMachinePersistsNewestInterval(t *testing.T) {
	for run := 0; run < 50; run++ {
		store := NewSettingsStore(t.TempDir())
		machine := workout.New(model.DefaultSettings(), workout.Config{TickInterval: time.Hour}, workout.Dependencies{Store: store})

		machine.SetIntervalDuration(60)
		machine.SetIntervalDuration(120)
		machine.Close()

		if got := machine.Snapshot().IntervalDuration; got != 120 {
			t.Fatalf("run %d: expected in-memory interval 120, got %d", run, got)
		}
		settings, found, err := store.Load()
		if err != nil || !found {
			t.Fatalf("run %d: load found=%v err=%v", run, found, err)
		}
		if settings.LastUsedInterval != 120 {
			t.Fatalf("run %d: expected persisted interval 120, got %d", run, settings.LastUsedInterval)
		}
	}
}
