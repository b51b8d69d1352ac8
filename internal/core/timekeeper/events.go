package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
)

// Event represents a TimeKeeper update for observers.
//
// For EventComplete, From is the mode that ran out and Mode is the mode the
// keeper switched to.
type Event struct {
	Type             EventType
	Mode             model.Mode
	From             model.Mode
	RemainingSeconds int
	Running          bool
	Progress         float64
	At               time.Time
}

// Snapshot is a consistent view of the timer state.
type Snapshot struct {
	Mode             model.Mode
	RemainingSeconds int
	TotalSeconds     int
	Running          bool
	Progress         float64
}
