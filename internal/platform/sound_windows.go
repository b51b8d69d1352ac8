//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func newSoundPlayer(wav []byte) SoundPlayer {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return unsupportedSoundPlayer{}
	}
	return &commandSoundPlayer{
		wav: wav,
		command: func(file string) *exec.Cmd {
			script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(file, "'", "''"))
			return exec.Command(path, "-NoProfile", "-NonInteractive", "-Command", script)
		},
	}
}
