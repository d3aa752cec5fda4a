//go:build linux

package platform

import "os/exec"

func newTonePlayer() TonePlayer {
	if path, err := exec.LookPath("paplay"); err == nil {
		return &commandPlayer{path: path, args: func(file string) []string {
			return []string{file}
		}}
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		return &commandPlayer{path: path, args: func(file string) []string {
			return []string{"-q", file}
		}}
	}
	return unsupportedTonePlayer{}
}
