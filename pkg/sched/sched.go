// Package sched defers work off the caller's interaction path.
//
// A full graph build over hundreds of nodes is too heavy to run inline on
// every key press, so the viewer hands rebuilds to a Scheduler, which
// coalesces bursts: when several deferrals arrive within one delay window,
// only the most recent function runs. Highlight changes never go through
// the scheduler; they are cheap and run synchronously.
package sched

import (
	"sync"
	"time"
)

// DefaultDelay is the coalescing window. Long enough to swallow a burst of
// mode-switch key presses, short enough to feel immediate.
const DefaultDelay = 50 * time.Millisecond

// Scheduler coalesces deferred work. The zero value is not usable; create
// one with New.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

// New creates a scheduler with the given coalescing delay. A non-positive
// delay falls back to the default.
func New(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay}
}

// Defer schedules fn to run after the coalescing delay on a separate
// goroutine. A call while another fn is pending replaces it; only the
// latest deferral survives a burst.
func (s *Scheduler) Defer(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = fn
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush runs any pending work immediately on the calling goroutine and
// cancels its timer.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	fn := s.take()
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop discards pending work without running it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.take()
}

// fire is the timer callback.
func (s *Scheduler) fire() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// take clears and returns the pending work. Caller holds the lock.
func (s *Scheduler) take() func() {
	fn := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return fn
}
