//go:build !linux && !darwin && !windows

package platform

func newSoundPlayer([]byte) SoundPlayer {
	return unsupportedSoundPlayer{}
}
