package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrAudioUnsupported indicates no audio player is available on this system.
var ErrAudioUnsupported = errors.New("audio playback unsupported")

// TonePlayer plays a WAV clip to completion.
type TonePlayer interface {
	Play(ctx context.Context, wav []byte) error
}

// NewTonePlayer returns a platform-specific tone player.
func NewTonePlayer() TonePlayer {
	return newTonePlayer()
}

// commandPlayer writes the clip to a temp file and runs an external player on it.
type commandPlayer struct {
	path string
	args func(file string) []string
}

func (player *commandPlayer) Play(ctx context.Context, wav []byte) error {
	file, err := os.CreateTemp("", "setbeast-*.wav")
	if err != nil {
		return fmt.Errorf("create tone file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(wav); err != nil {
		file.Close()
		return fmt.Errorf("write tone file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close tone file: %w", err)
	}

	output, err := exec.CommandContext(ctx, player.path, player.args(file.Name())...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", player.path, err, string(output))
	}
	return nil
}

type unsupportedTonePlayer struct{}

func (unsupportedTonePlayer) Play(context.Context, []byte) error {
	return ErrAudioUnsupported
}
