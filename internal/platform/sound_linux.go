//go:build linux

package platform

import "os/exec"

func newSoundPlayer(wav []byte) SoundPlayer {
	for _, tool := range []string{"paplay", "pw-play", "aplay"} {
		path, err := exec.LookPath(tool)
		if err != nil {
			continue
		}
		args := []string{}
		if tool == "aplay" {
			args = append(args, "-q")
		}
		return &commandSoundPlayer{
			wav: wav,
			command: func(file string) *exec.Cmd {
				return exec.Command(path, append(args, file)...)
			},
		}
	}
	return unsupportedSoundPlayer{}
}
