//go:build darwin

package platform

import "os/exec"

func newTonePlayer() TonePlayer {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return unsupportedTonePlayer{}
	}
	return &commandPlayer{path: path, args: func(file string) []string {
		return []string{file}
	}}
}
