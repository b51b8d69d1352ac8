// Package notify turns timer completions into sound and system notifications.
// Delivery failures are logged and reported to an optional advisory callback;
// they never reach the timer.
package notify

import (
	"context"
	"fmt"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"

	"pkt.systems/pslog"
)

// Title is the heading of every completion notification.
const Title = "Pomodoro Timer Complete"

// Sound plays the completion sound.
type Sound interface {
	Play() error
}

// Notifier shows a system notification.
type Notifier interface {
	Permitted() bool
	Notify(title, body string) error
}

// SettingsSource exposes the committed notification preferences.
type SettingsSource interface {
	Current() model.Settings
}

// Dispatcher delivers completion effects according to the current settings.
type Dispatcher struct {
	mu       sync.Mutex
	settings SettingsSource
	sound    Sound
	notifier Notifier
	log      pslog.Logger
	advise   func(string)
}

// New creates a dispatcher. sound and notifier may be nil.
func New(settings SettingsSource, sound Sound, notifier Notifier, logger pslog.Logger) *Dispatcher {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Dispatcher{
		settings: settings,
		sound:    sound,
		notifier: notifier,
		log:      logger,
	}
}

// SetAdvisory sets a callback that receives user-facing failure messages.
func (dispatcher *Dispatcher) SetAdvisory(advise func(message string)) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.advise = advise
}

// Run handles events until ctx is done or the channel closes.
func (dispatcher *Dispatcher) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			dispatcher.Handle(event)
		}
	}
}

// Handle delivers the effects for a completion event and ignores the rest.
func (dispatcher *Dispatcher) Handle(event timekeeper.Event) {
	if event.Type != timekeeper.EventComplete {
		return
	}
	settings := dispatcher.settings.Current()
	log := dispatcher.log.With("ended", event.From.String(), "next", event.Mode.String())
	log.Info("timer complete")

	if settings.AudioNotifications && dispatcher.sound != nil {
		if err := dispatcher.sound.Play(); err != nil {
			log.Warn("completion sound failed", "err", err)
			dispatcher.report("Could not play the completion sound.")
		}
	}

	if settings.BrowserNotifications && dispatcher.notifier != nil {
		if !dispatcher.notifier.Permitted() {
			log.Debug("notifications not permitted")
			return
		}
		if err := dispatcher.notifier.Notify(Title, Body(event.From, event.Mode)); err != nil {
			log.Warn("completion notification failed", "err", err)
			dispatcher.report("Could not show the completion notification.")
		}
	}
}

// Body returns the notification text for a completed mode.
func Body(ended, next model.Mode) string {
	return fmt.Sprintf("%s time is up! Time for %s.", ended.Label(), next.Label())
}

func (dispatcher *Dispatcher) report(message string) {
	dispatcher.mu.Lock()
	advise := dispatcher.advise
	dispatcher.mu.Unlock()
	if advise != nil {
		advise(message)
	}
}
