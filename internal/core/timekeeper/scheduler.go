package timekeeper

import (
	"sync"
	"time"
)

// Handle cancels a periodic task started by a Scheduler.
type Handle interface {
	Cancel()
}

// Scheduler starts periodic tasks. Every must keep firing fn once per
// interval until the returned handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// TickerScheduler runs periodic tasks on time.Ticker goroutines.
type TickerScheduler struct{}

// Every starts a ticker goroutine that calls fn on each tick.
func (TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	handle := &tickerHandle{stopCh: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
