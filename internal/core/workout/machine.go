package workout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"setbeast/internal/core/model"

	"github.com/google/uuid"
)

// Notifier renders the end-of-rest signal. Implementations swallow their own
// failures.
type Notifier interface {
	Notify(volume float64, vibrate bool)
}

// SettingsStore persists settings with partial-merge semantics.
type SettingsStore interface {
	Save(patch model.SettingsPatch) error
}

// Session summarizes a finished workout.
type Session struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	TotalSets       int
	IntervalSeconds int
}

// Recorder stores finished workouts.
type Recorder interface {
	Record(ctx context.Context, session Session) error
}

// Config contains runtime options for Machine.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
}

// Dependencies are the collaborators called outside the reducer.
// Any of them may be nil.
type Dependencies struct {
	Notifier Notifier
	Store    SettingsStore
	Recorder Recorder
}

// Machine serializes events into Reduce and drives the one-second tick while
// a workout is active.
type Machine struct {
	mu         sync.Mutex
	state      State
	options    Config
	deps       Dependencies
	events     []chan Update
	driver     *tickDriver
	generation uint64
	closed     bool
	effects    sync.WaitGroup

	// saves run in call order on a single drain goroutine.
	saves  []model.SettingsPatch
	saving bool
}

// New creates a Machine in the Idle phase.
func New(settings model.Settings, options Config, deps Dependencies) *Machine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Machine{
		state:   InitialState(settings),
		options: options,
		deps:    deps,
	}
}

// Snapshot returns a copy of the current state.
func (machine *Machine) Snapshot() State {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.state.clone()
}

// Subscribe registers a new observer channel.
func (machine *Machine) Subscribe(buffer int) <-chan Update {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Update, buffer)
	machine.mu.Lock()
	if machine.closed {
		close(ch)
	} else {
		machine.events = append(machine.events, ch)
	}
	machine.mu.Unlock()
	return ch
}

// StartWorkout opens a new session and starts the countdown.
func (machine *Machine) StartWorkout() {
	machine.Dispatch(Event{Type: EventStartWorkout, SessionID: uuid.NewString()})
}

// EndWorkout closes the session.
func (machine *Machine) EndWorkout() {
	machine.Dispatch(Event{Type: EventEndWorkout})
}

// PauseTimer freezes the countdown. The workout clock keeps running.
func (machine *Machine) PauseTimer() {
	machine.Dispatch(Event{Type: EventPauseTimer})
}

// ResumeTimer continues a paused countdown.
func (machine *Machine) ResumeTimer() {
	machine.Dispatch(Event{Type: EventResumeTimer})
}

// SetIntervalDuration changes the rest length and persists it as the last
// used interval.
func (machine *Machine) SetIntervalDuration(seconds int) {
	if seconds <= 0 {
		return
	}
	last := seconds
	machine.dispatch(Event{Type: EventSetInterval, Interval: seconds}, 0, &model.SettingsPatch{LastUsedInterval: &last})
}

// SaveSettings merges patch into the in-memory settings and persists it.
func (machine *Machine) SaveSettings(patch model.SettingsPatch) {
	if patch.IsEmpty() {
		return
	}
	machine.dispatch(Event{Type: EventUpdateSettings, Patch: patch}, 0, &patch)
}

// LoadSettings replaces the in-memory settings with a stored record.
func (machine *Machine) LoadSettings(settings model.Settings) {
	machine.Dispatch(Event{Type: EventLoadSettings, Settings: settings})
}

// Dispatch reduces event against the current state. A zero event time is
// replaced with the configured clock.
func (machine *Machine) Dispatch(event Event) {
	machine.dispatch(event, 0, nil)
}

// Close cancels the tick driver, closes observers and waits for pending
// side effects.
func (machine *Machine) Close() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		machine.effects.Wait()
		return
	}
	machine.closed = true
	machine.stopDriverLocked()
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	machine.effects.Wait()
}

// dispatch drops ticks from a driver whose generation is not current. A
// non-nil persist is queued for the store under the same lock as the
// transition, so saves land in dispatch order.
func (machine *Machine) dispatch(event Event, generation uint64, persist *model.SettingsPatch) {
	if event.At.IsZero() {
		event.At = machine.options.Now()
	}

	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	if event.Type == EventTick && generation != 0 && generation != machine.generation {
		machine.mu.Unlock()
		return
	}

	previous := machine.state
	next := Reduce(previous, event)
	machine.state = next

	switch {
	case !previous.IsWorkoutActive && next.IsWorkoutActive:
		machine.startDriverLocked()
	case previous.IsWorkoutActive && !next.IsWorkoutActive:
		machine.stopDriverLocked()
	}

	if persist != nil {
		machine.saveLocked(*persist)
	}

	rollover := next.IsWorkoutActive && next.TotalSets > previous.TotalSets
	machine.emitLocked(Update{
		Event:    event.Type,
		State:    next.clone(),
		Rollover: rollover,
		At:       event.At,
	})
	machine.mu.Unlock()

	if rollover {
		machine.notify(next.Settings)
	}
	if previous.IsWorkoutActive && !previous.WorkoutStartTime.IsZero() &&
		(event.Type == EventEndWorkout || event.Type == EventStartWorkout) {
		machine.record(sessionFrom(previous, event.At))
	}
}

func (machine *Machine) startDriverLocked() {
	machine.stopDriverLocked()
	machine.generation++
	generation := machine.generation
	machine.driver = startTickDriver(machine.options.TickInterval, func() {
		machine.dispatch(Event{Type: EventTick}, generation, nil)
	})
}

func (machine *Machine) stopDriverLocked() {
	if machine.driver == nil {
		return
	}
	machine.driver.stop()
	machine.driver = nil
}

func (machine *Machine) ticking() bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.driver != nil
}

func (machine *Machine) emitLocked(update Update) {
	for _, ch := range machine.events {
		select {
		case ch <- update:
		default:
		}
	}
}

func (machine *Machine) notify(settings model.Settings) {
	if machine.deps.Notifier == nil {
		return
	}
	volume := settings.BeepVolume
	vibrate := settings.VibrationEnabled
	machine.goEffect(func() {
		machine.deps.Notifier.Notify(volume, vibrate)
	})
}

func (machine *Machine) saveLocked(patch model.SettingsPatch) {
	if machine.deps.Store == nil {
		return
	}
	machine.saves = append(machine.saves, patch)
	if machine.saving {
		return
	}
	machine.saving = true
	machine.effects.Add(1)
	go machine.drainSaves()
}

func (machine *Machine) drainSaves() {
	defer machine.effects.Done()
	for {
		machine.mu.Lock()
		if len(machine.saves) == 0 {
			machine.saving = false
			machine.mu.Unlock()
			return
		}
		patch := machine.saves[0]
		machine.saves = machine.saves[1:]
		machine.mu.Unlock()

		if err := machine.deps.Store.Save(patch); err != nil {
			slog.Warn("save settings failed", "error", err)
		}
	}
}

func (machine *Machine) record(session Session) {
	if machine.deps.Recorder == nil {
		return
	}
	machine.goEffect(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := machine.deps.Recorder.Record(ctx, session); err != nil {
			slog.Warn("record workout failed", "session_id", session.ID, "error", err)
		}
	})
}

func (machine *Machine) goEffect(effect func()) {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.effects.Add(1)
	machine.mu.Unlock()

	go func() {
		defer machine.effects.Done()
		effect()
	}()
}

func sessionFrom(state State, endedAt time.Time) Session {
	duration := elapsedSeconds(state.WorkoutStartTime, endedAt)
	if duration < state.WorkoutDuration {
		duration = state.WorkoutDuration
	}
	return Session{
		ID:              state.SessionID,
		StartedAt:       state.WorkoutStartTime,
		EndedAt:         endedAt,
		DurationSeconds: duration,
		TotalSets:       state.TotalSets,
		IntervalSeconds: state.IntervalDuration,
	}
}
