//go:build darwin

package platform

import "os/exec"

func newSoundPlayer(wav []byte) SoundPlayer {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return unsupportedSoundPlayer{}
	}
	return &commandSoundPlayer{
		wav: wav,
		command: func(file string) *exec.Cmd {
			return exec.Command(path, file)
		},
	}
}
