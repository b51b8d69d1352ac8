// Package session binds the settings store, the timekeeper and completion
// effects into the intents a front end forwards.
package session

import (
	"context"
	"fmt"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/settings"

	"pkt.systems/pslog"
)

// AppTitle is appended to the clock in window and document titles.
const AppTitle = "Pomodoro Vibe"

// Options configures a Session.
type Options struct {
	Keeper     timekeeper.Config
	Dispatcher *notify.Dispatcher
	Logger     pslog.Logger
}

// Display is everything a front end renders.
type Display struct {
	Minutes  string
	Seconds  string
	Title    string
	Mode     model.Mode
	Running  bool
	Progress float64
	Theme    model.Theme
}

// Session is the single owner of the timer for one front end.
type Session struct {
	store  *settings.Store
	keeper *timekeeper.TimeKeeper
	log    pslog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New loads the persisted settings, resets the timer to the focus duration
// and starts delivering completion effects through the dispatcher, if any.
func New(ctx context.Context, store *settings.Store, options Options) *Session {
	logger := options.Logger
	if logger == nil {
		logger = pslog.Ctx(ctx)
	}
	if err := store.Load(); err != nil {
		logger.Warn("settings load failed, using defaults", "err", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	session := &Session{
		store:  store,
		keeper: timekeeper.New(store, options.Keeper),
		log:    logger,
		cancel: cancel,
	}
	session.keeper.Reset()

	if options.Dispatcher != nil {
		events := session.keeper.Subscribe(64)
		session.wg.Add(1)
		go func() {
			defer session.wg.Done()
			options.Dispatcher.Run(ctx, events)
		}()
	}
	return session
}

// Subscribe returns a channel of timer events.
func (session *Session) Subscribe(buffer int) <-chan timekeeper.Event {
	return session.keeper.Subscribe(buffer)
}

// Settings exposes the underlying store.
func (session *Session) Settings() *settings.Store {
	return session.store
}

func (session *Session) Start() {
	session.keeper.Start()
}

func (session *Session) Pause() {
	session.keeper.Pause()
}

func (session *Session) Reset() {
	session.keeper.Reset()
}

func (session *Session) SwitchMode(mode model.Mode) {
	session.keeper.SwitchMode(mode)
}

// Tick advances the countdown by one step, as the periodic task does.
func (session *Session) Tick() {
	session.keeper.Tick()
}

// SaveSettings commits the form and resets the timer so the new duration
// of the current mode takes effect. The commit stands even if persisting
// fails; the error is returned for the front end to report.
func (session *Session) SaveSettings(form settings.Form) (model.Settings, error) {
	committed, err := session.store.Save(form)
	session.keeper.Reset()
	if err != nil {
		session.log.Warn("settings saved in memory only", "err", err)
	}
	return committed, err
}

// Form returns the editable mirror of the committed settings.
func (session *Session) Form() settings.Form {
	return session.store.Form()
}

// DefaultForm previews the built-in defaults without committing them.
func (session *Session) DefaultForm() settings.Form {
	return session.store.DefaultForm()
}

// SetTheme commits and persists the theme.
func (session *Session) SetTheme(theme model.Theme) error {
	return session.store.SetTheme(theme)
}

// Reload re-reads the persisted settings, for instance after another
// process changed them. The countdown is reset only when it is idle and the
// current mode's duration changed.
func (session *Session) Reload() error {
	before := session.store.Current()
	if err := session.store.Load(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	snapshot := session.keeper.Snapshot()
	if snapshot.Running {
		return nil
	}
	if session.store.DurationFor(snapshot.Mode) != before.DurationFor(snapshot.Mode) {
		session.keeper.Reset()
	}
	return nil
}

// Display returns the current render state.
func (session *Session) Display() Display {
	snapshot := session.keeper.Snapshot()
	minutes, seconds := Clock(snapshot.RemainingSeconds)
	return Display{
		Minutes:  minutes,
		Seconds:  seconds,
		Title:    Title(snapshot.RemainingSeconds),
		Mode:     snapshot.Mode,
		Running:  snapshot.Running,
		Progress: snapshot.Progress,
		Theme:    session.store.Current().Theme,
	}
}

// Close stops the countdown and the completion dispatcher.
func (session *Session) Close() {
	session.keeper.Close()
	session.cancel()
	session.wg.Wait()
}

// Clock splits remaining seconds into zero-padded minute and second digits.
func Clock(remaining int) (string, string) {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d", remaining/60), fmt.Sprintf("%02d", remaining%60)
}

// Title formats the window title for the remaining seconds.
func Title(remaining int) string {
	minutes, seconds := Clock(remaining)
	return minutes + ":" + seconds + " - " + AppTitle
}
