package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bellFrame is how long the bell character stays in the rendered frame.
const bellFrame = 100 * time.Millisecond

// BellMsg asks the model to ring the terminal bell.
type BellMsg struct{}

type bellDoneMsg struct{}

// Bell is a completion sound that rings the terminal bell. The bell is sent
// into the program so it is written by the renderer, which owns the terminal.
type Bell struct {
	Send func(tea.Msg)
}

func (bell Bell) Play() error {
	if bell.Send == nil {
		return errors.New("ring bell: no program")
	}
	bell.Send(BellMsg{})
	return nil
}

func ringBell() tea.Cmd {
	return tea.Tick(bellFrame, func(time.Time) tea.Msg {
		return bellDoneMsg{}
	})
}
