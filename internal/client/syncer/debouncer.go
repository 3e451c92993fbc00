// Package syncer coalesces bursts of collection edits into a single profile
// update sent after a quiet period.
package syncer

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a timer that calls f once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs action once the delay has elapsed without another Trigger.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	action  func()
	after   AfterFunc
	timer   Timer
	gen     uint64
	stopped bool
}

type DebouncerOption func(*Debouncer)

// WithAfterFunc replaces the timer factory. Tests use it to drive time by hand.
func WithAfterFunc(fn AfterFunc) DebouncerOption {
	return func(d *Debouncer) { d.after = fn }
}

func NewDebouncer(delay time.Duration, action func(), opts ...DebouncerOption) *Debouncer {
	d := &Debouncer{
		delay:  delay,
		action: action,
		after:  stdAfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger cancels any pending run and arms a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// a timer that lost the race with Trigger, Flush or Stop carries an old gen.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.action()
}

// Pending reports whether a run is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush runs the pending action now, on the caller's goroutine. It returns
// false when nothing was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	d.action()
	return true
}

// Stop cancels a pending run. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.stopped = true
}
