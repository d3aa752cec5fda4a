package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"setbeast/internal/config"
	"setbeast/internal/core/model"
	"setbeast/internal/core/workout"
	"setbeast/internal/notify"
	"setbeast/internal/platform"
	"setbeast/internal/storage"
	"setbeast/internal/ui/format"
	"setbeast/internal/ui/home"
	"setbeast/internal/ui/preferences"
	"setbeast/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "SetBeast"

func main() {
	slog.SetDefault(config.NewLogger(slog.LevelInfo))

	defaultDir, err := platform.ConfigDir(appName)
	if err != nil {
		slog.Warn("resolve config dir failed, using working directory", "error", err)
		defaultDir = "."
	}
	cfg, err := config.ParseFlags(config.Load(defaultDir), os.Args[1:])
	if err != nil {
		slog.Error("invalid command line", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(config.NewLogger(cfg.LogLevel))
	slog.Debug("configuration", "config_dir", cfg.ConfigDir, "history_db", cfg.HistoryPath(), "tick_interval", cfg.TickInterval)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		slog.Info("SetBeast is already running, bringing it forward", "error", err)
		if err := platform.ActivateRunningInstance(appName); err != nil {
			slog.Error("activate running instance failed", "error", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsStore := storage.NewSettingsStore(cfg.ConfigDir)
	settings, found, err := settingsStore.Load()
	if err != nil {
		slog.Warn("load settings failed, using defaults", "path", settingsStore.Path(), "error", err)
	} else if !found {
		slog.Debug("no stored settings, using defaults", "path", settingsStore.Path())
	}

	fyneApp := app.NewWithID("com.setbeast.app")
	fyneApp.SetIcon(theme.MediaPlayIcon())

	haptics := notify.NewFyneHaptics(fyneApp, nil)
	sink := notify.NewSink(func() notify.Player {
		return platform.NewTonePlayer()
	}, haptics)
	go func() {
		if err := sink.Setup(); err != nil {
			slog.Warn("audio setup failed, will retry on first beep", "error", err)
		}
	}()

	recorder := &historyRecorder{}
	deps := workout.Dependencies{Notifier: sink, Store: settingsStore}
	history, err := storage.OpenHistory(cfg.HistoryPath())
	if err != nil {
		slog.Warn("workout history unavailable", "path", cfg.HistoryPath(), "error", err)
	} else {
		defer history.Close()
		recorder.store = history
		deps.Recorder = recorder
	}

	machine := workout.New(settings, workout.Config{TickInterval: cfg.TickInterval}, deps)
	defer machine.Close()

	prefsWindow := preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: machine.SaveSettings,
		OnTest: func(edited model.Settings) error {
			return sink.Test(edited.BeepVolume, edited.VibrationEnabled)
		},
	})

	homeWindow := home.New(fyneApp, machine, home.Callbacks{
		OnSettings: func() {
			prefsWindow.Show(machine.Snapshot().Settings)
		},
		OnHistory: func() string {
			if history == nil {
				return ""
			}
			return todaySummary(history, time.Now())
		},
	})
	haptics.SetWindow(homeWindow.Window())
	recorder.OnRecorded(func() {
		fyne.Do(homeWindow.RefreshHistory)
	})
	guard.Serve(func() {
		slog.Debug("activation requested by another launch")
		fyne.Do(homeWindow.Show)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: homeWindow.Show,
			OnToggleStart: func() {
				if machine.Snapshot().IsWorkoutActive {
					machine.EndWorkout()
				} else {
					machine.StartWorkout()
				}
			},
			OnTogglePause: func() {
				switch machine.Snapshot().Phase() {
				case workout.PhaseRunning:
					machine.PauseTimer()
				case workout.PhasePaused:
					machine.ResumeTimer()
				}
			},
			OnSettings: func() {
				prefsWindow.Show(machine.Snapshot().Settings)
			},
			OnQuit: fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
		homeWindow.Window().SetCloseIntercept(func() {
			homeWindow.Window().Hide()
		})
	} else {
		slog.Info("system tray unsupported on this platform")
		homeWindow.Window().SetMaster()
	}

	updates := machine.Subscribe(16)
	go func() {
		var lastPhase workout.Phase
		for update := range updates {
			state := update.State
			fyne.Do(func() {
				homeWindow.Render(state)
				if trayManager == nil {
					return
				}
				trayManager.Render(state)
				if phase := state.Phase(); phase != lastPhase {
					lastPhase = phase
					setTrayIcon(fyneApp, phase)
				}
			})
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := storage.WatchSettings(ctx, settingsStore, func(reloaded model.Settings) {
		if reloaded.Equal(machine.Snapshot().Settings) {
			return
		}
		slog.Info("settings changed on disk, reloading")
		machine.LoadSettings(reloaded)
	}); err != nil {
		slog.Warn("settings watcher unavailable", "error", err)
	}

	homeWindow.Show()
	fyneApp.Run()
	slog.Info("SetBeast exited")
}

// historyRecorder stores finished workouts and refreshes the idle summary.
type historyRecorder struct {
	store *storage.HistoryStore

	mu         sync.Mutex
	onRecorded func()
}

// OnRecorded sets the callback run after each stored workout.
func (recorder *historyRecorder) OnRecorded(callback func()) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.onRecorded = callback
}

func (recorder *historyRecorder) Record(ctx context.Context, session workout.Session) error {
	if err := recorder.store.Record(ctx, session); err != nil {
		return err
	}
	slog.Info("workout recorded", "session_id", session.ID, "sets", session.TotalSets, "duration_seconds", session.DurationSeconds)

	recorder.mu.Lock()
	onRecorded := recorder.onRecorded
	recorder.mu.Unlock()
	if onRecorded != nil {
		onRecorded()
	}
	return nil
}

func todaySummary(history *storage.HistoryStore, now time.Time) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := history.Stats(ctx, midnight)
	if err != nil {
		slog.Warn("read workout stats failed", "error", err)
		return ""
	}
	return summarize(stats)
}

func summarize(stats storage.HistoryStats) string {
	if stats.Workouts == 0 {
		return "No workouts yet today. Tap Start Workout to begin your rest timer."
	}
	workouts := "workouts"
	if stats.Workouts == 1 {
		workouts = "workout"
	}
	return fmt.Sprintf("Today: %d %s, %d sets, %s", stats.Workouts, workouts, stats.TotalSets, format.Clock(stats.TotalSeconds))
}

func setTrayIcon(fyneApp fyne.App, phase workout.Phase) {
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return
	}
	if phase == workout.PhasePaused {
		desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
		return
	}
	desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
}
