//go:build !linux && !darwin && !windows

package platform

func newTonePlayer() TonePlayer {
	return unsupportedTonePlayer{}
}
