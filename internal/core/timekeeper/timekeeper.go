package timekeeper

import (
	"slices"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// DurationSource reports the configured minutes for each mode.
type DurationSource interface {
	DurationFor(mode model.Mode) int
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
}

// TimeKeeper is the Pomodoro state machine. It is idle until Start and owns
// at most one periodic tick task at a time.
//
// Tick and state change events are dropped for subscribers whose buffer is
// full. Completion events block until every subscriber has received them or
// the keeper is closed.
type TimeKeeper struct {
	mu         sync.Mutex
	delivery   sync.RWMutex
	done       chan struct{}
	durations  DurationSource
	options    Config
	mode       model.Mode
	remaining  int
	running    bool
	handle     Handle
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle TimeKeeper in focus mode with a full countdown.
func New(durations DurationSource, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}

	keeper := &TimeKeeper{
		durations: durations,
		options:   options,
		mode:      model.ModeFocus,
		done:      make(chan struct{}),
	}
	keeper.remaining = keeper.totalSecondsLocked()
	return keeper
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Start begins the countdown. Calling Start while running does nothing.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running || keeper.closed {
		return
	}

	keeper.running = true
	keeper.generation++
	generation := keeper.generation
	keeper.handle = keeper.options.Scheduler.Every(keeper.options.TickInterval, func() {
		keeper.tickGeneration(generation)
	})
	keeper.emitLocked(EventStateChange)
}

// Pause stops the countdown without touching the remaining time. Calling
// Pause while idle does nothing.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}
	keeper.stopLocked()
	keeper.emitLocked(EventStateChange)
}

// Reset stops the countdown and refills it from the current mode's duration.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.resetLocked()
	keeper.emitLocked(EventStateChange)
}

// SwitchMode changes the mode and resets the countdown for it.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.mode = mode
	keeper.resetLocked()
	keeper.emitLocked(EventStateChange)
}

// Tick advances the countdown by one step. It does nothing while idle.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	keeper.tickAndUnlock()
}

// Snapshot returns the current timer state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Close cancels the tick task and closes observer channels.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.stopLocked()
	keeper.closed = true
	close(keeper.done)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	// Wait for in-flight completion sends to give up before closing.
	keeper.delivery.Lock()
	defer keeper.delivery.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tickGeneration(generation uint64) {
	keeper.mu.Lock()
	if generation != keeper.generation {
		keeper.mu.Unlock()
		return
	}
	keeper.tickAndUnlock()
}

// tickAndUnlock runs one tick with keeper.mu held and releases it. A
// completion is delivered after the release so that subscribers may call
// back into the keeper while the send is pending.
func (keeper *TimeKeeper) tickAndUnlock() {
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.remaining--
	keeper.emitLocked(EventTick)
	if keeper.remaining > 0 {
		keeper.mu.Unlock()
		return
	}

	event := keeper.completeLocked()
	subscribers := slices.Clone(keeper.events)
	keeper.delivery.RLock()
	keeper.mu.Unlock()
	defer keeper.delivery.RUnlock()

	for _, ch := range subscribers {
		select {
		case ch <- event:
		case <-keeper.done:
			return
		}
	}
}

func (keeper *TimeKeeper) completeLocked() Event {
	finished := keeper.mode
	keeper.stopLocked()
	keeper.mode = finished.Next()
	keeper.remaining = keeper.totalSecondsLocked()

	event := keeper.eventLocked(EventComplete)
	event.From = finished
	return event
}

func (keeper *TimeKeeper) resetLocked() {
	keeper.stopLocked()
	keeper.remaining = keeper.totalSecondsLocked()
}

func (keeper *TimeKeeper) stopLocked() {
	keeper.running = false
	keeper.generation++
	if keeper.handle != nil {
		keeper.handle.Cancel()
		keeper.handle = nil
	}
}

func (keeper *TimeKeeper) totalSecondsLocked() int {
	minutes := keeper.durations.DurationFor(keeper.mode)
	if minutes < 0 {
		return 0
	}
	return min(minutes, model.MaxDurationMinutes) * 60
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	total := keeper.totalSecondsLocked()
	progress := 0.0
	if total > 0 {
		progress = float64(keeper.remaining) / float64(total)
	}
	return Snapshot{
		Mode:             keeper.mode,
		RemainingSeconds: keeper.remaining,
		TotalSeconds:     total,
		Running:          keeper.running,
		Progress:         progress,
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	snapshot := keeper.snapshotLocked()
	return Event{
		Type:             eventType,
		Mode:             snapshot.Mode,
		From:             snapshot.Mode,
		RemainingSeconds: snapshot.RemainingSeconds,
		Running:          snapshot.Running,
		Progress:         snapshot.Progress,
		At:               time.Now(),
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType) {
	keeper.sendLocked(keeper.eventLocked(eventType))
}

func (keeper *TimeKeeper) sendLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
