//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func newTonePlayer() TonePlayer {
	path, err := exec.LookPath("powershell.exe")
	if err != nil {
		return unsupportedTonePlayer{}
	}
	return &commandPlayer{path: path, args: func(file string) []string {
		quoted := strings.ReplaceAll(file, "'", "''")
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted)
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	}}
}
