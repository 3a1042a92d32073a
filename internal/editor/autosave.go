package editor

import (
	"sync"
	"time"
)

// Autosave is a debounced persistence trigger: every Touch resets the delay,
// and only a timer that survives the full delay unsuperseded fires the save
// callback. Stop cancels any pending save.
type Autosave struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	save  func()
}

// NewAutosave builds the debouncer around a save callback.
func NewAutosave(delay time.Duration, save func()) *Autosave {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Autosave{
		delay: delay,
		save:  save,
	}
}

// Touch schedules (or reschedules) the save.
func (a *Autosave) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.save)
}

// Flush cancels the pending timer and runs the save immediately.
func (a *Autosave) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.save()
}

// Stop cancels any pending save without running it.
func (a *Autosave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
