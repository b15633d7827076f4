package session

import (
	"sync"
	"time"
)

// Scheduler arms a single pending tick. Scheduling again replaces the
// pending tick; Cancel drops it. A fire that was already in flight when
// Cancel ran may still arrive, which is why the Machine tags every tick
// with a generation.
type Scheduler interface {
	Schedule(after time.Duration, fire func())
	Cancel()
}

// TimerScheduler runs ticks on runtime timers. Each fire runs on its own
// goroutine.
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler creates a timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule arms fire to run once after the given delay.
func (s *TimerScheduler) Schedule(after time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(after, fire)
}

// Cancel stops the pending timer, if any.
func (s *TimerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// ManualScheduler holds the pending tick until Fire is called.
// Useful for tests and for drivers that own their own loop.
type ManualScheduler struct {
	mu      sync.Mutex
	pending func()
	after   time.Duration
	armed   bool
}

// NewManualScheduler creates an idle manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule records fire as the pending tick.
func (s *ManualScheduler) Schedule(after time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = fire
	s.after = after
	s.armed = true
}

// Cancel drops the pending tick.
func (s *ManualScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	s.armed = false
}

// Pending reports the delay of the armed tick.
func (s *ManualScheduler) Pending() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.after, s.armed
}

// Fire runs the pending tick, if any. Returns false when nothing was armed.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fire := s.pending
	s.pending = nil
	s.armed = false
	s.mu.Unlock()

	if fire == nil {
		return false
	}
	fire()
	return true
}

// Take removes and returns the pending tick without running it, so a caller
// can replay it later as a stale fire.
func (s *ManualScheduler) Take() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fire := s.pending
	s.pending = nil
	s.armed = false
	return fire, fire != nil
}
