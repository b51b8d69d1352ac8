package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// ErrUnsupported indicates the platform has no tool for the requested effect.
var ErrUnsupported = errors.New("unsupported on this platform")

// SoundPlayer plays a fixed audio clip. Close releases any file the player
// staged for the system tool.
type SoundPlayer interface {
	Play() error
	Close() error
}

// NewSoundPlayer returns a player for the given WAV clip using the first
// system audio tool found.
func NewSoundPlayer(wav []byte) SoundPlayer {
	return newSoundPlayer(wav)
}

type unsupportedSoundPlayer struct{}

func (unsupportedSoundPlayer) Play() error {
	return fmt.Errorf("play sound: %w", ErrUnsupported)
}

func (unsupportedSoundPlayer) Close() error {
	return nil
}

// commandSoundPlayer writes the clip to a temp file on first use and hands it
// to an external player. Play returns as soon as the player has started.
type commandSoundPlayer struct {
	wav     []byte
	command func(path string) *exec.Cmd

	mu     sync.Mutex
	path   string
	closed bool
}

func (player *commandSoundPlayer) Play() error {
	path, err := player.file()
	if err != nil {
		return err
	}
	cmd := player.command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Close removes the staged clip. Later calls to Play fail.
func (player *commandSoundPlayer) Close() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.closed = true
	if player.path == "" {
		return nil
	}
	path := player.path
	player.path = ""
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove sound file: %w", err)
	}
	return nil
}

func (player *commandSoundPlayer) file() (string, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return "", errors.New("sound player closed")
	}
	if player.path != "" {
		return player.path, nil
	}

	tmp, err := os.CreateTemp("", "pomodoro-complete-*.wav")
	if err != nil {
		return "", fmt.Errorf("create sound file: %w", err)
	}
	if _, err := tmp.Write(player.wav); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write sound file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close sound file: %w", err)
	}
	player.path = tmp.Name()
	return player.path, nil
}
