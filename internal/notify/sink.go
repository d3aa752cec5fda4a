// Package notify renders the end-of-rest signal: a beep plus a pulse.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// PulseStyle selects the strength of a haptic pulse.
type PulseStyle int

const (
	// PulseSuccess accompanies a tone that played.
	PulseSuccess PulseStyle = iota
	// PulseHeavy replaces a tone that failed to play.
	PulseHeavy
)

// Player plays a WAV clip.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// Haptics emits a pulse. On a desktop this is a system notification.
type Haptics interface {
	Pulse(style PulseStyle) error
}

var errNoPlayer = errors.New("no tone player available")

const playTimeout = 5 * time.Second

// Sink plays the end-of-rest tone and pulse. It initializes itself on first
// use when Setup was not called or failed earlier.
type Sink struct {
	mu        sync.Mutex
	newPlayer func() Player
	player    Player
	haptics   Haptics
}

// NewSink creates a sink. newPlayer is called by Setup to resolve audio.
func NewSink(newPlayer func() Player, haptics Haptics) *Sink {
	return &Sink{newPlayer: newPlayer, haptics: haptics}
}

// Setup resolves the audio player.
func (sink *Sink) Setup() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.setupLocked()
}

func (sink *Sink) setupLocked() error {
	if sink.player != nil {
		return nil
	}
	if sink.newPlayer == nil {
		return errNoPlayer
	}
	player := sink.newPlayer()
	if player == nil {
		return errNoPlayer
	}
	sink.player = player
	slog.Debug("audio ready")
	return nil
}

// Notify plays the tone at volume and pulses when vibrate is set. If the tone
// cannot be played a heavy pulse is sent instead. Failures are logged only.
func (sink *Sink) Notify(volume float64, vibrate bool) {
	if err := sink.play(volume); err != nil {
		slog.Warn("beep playback failed", "error", err)
		if vibrate {
			sink.pulse(PulseHeavy)
		}
		return
	}
	if vibrate {
		sink.pulse(PulseSuccess)
	}
}

// Test plays the tone the same way a rollover does and reports the result.
func (sink *Sink) Test(volume float64, vibrate bool) error {
	err := sink.play(volume)
	if vibrate {
		if err != nil {
			sink.pulse(PulseHeavy)
		} else {
			sink.pulse(PulseSuccess)
		}
	}
	return err
}

func (sink *Sink) play(volume float64) error {
	sink.mu.Lock()
	if err := sink.setupLocked(); err != nil {
		sink.mu.Unlock()
		return err
	}
	player := sink.player
	sink.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
	defer cancel()
	return player.Play(ctx, Tone(volume))
}

func (sink *Sink) pulse(style PulseStyle) {
	if sink.haptics == nil {
		return
	}
	if err := sink.haptics.Pulse(style); err != nil {
		slog.Warn("haptic pulse failed", "style", style, "error", err)
	}
}
