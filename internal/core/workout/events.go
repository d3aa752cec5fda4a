package workout

import (
	"time"

	"setbeast/internal/core/model"
)

// EventType defines the kind of input reduced against State.
type EventType string

const (
	EventStartWorkout   EventType = "start_workout"
	EventEndWorkout     EventType = "end_workout"
	EventPauseTimer     EventType = "pause_timer"
	EventResumeTimer    EventType = "resume_timer"
	EventSetInterval    EventType = "set_interval"
	EventTick           EventType = "tick"
	EventLoadSettings   EventType = "load_settings"
	EventUpdateSettings EventType = "update_settings"
)

// EventStartTimer is an alias for resuming a paused rest.
const EventStartTimer = EventResumeTimer

// Event is a single input to Reduce.
type Event struct {
	Type EventType
	// At is the time the event happened. Reduce never reads the clock.
	At time.Time

	Interval  int
	SessionID string
	Settings  model.Settings
	Patch     model.SettingsPatch
}

// Update is delivered to observers after every accepted event.
type Update struct {
	Event    EventType
	State    State
	Rollover bool
	At       time.Time
}
