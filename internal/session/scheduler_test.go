package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	if s.Fire() {
		t.Error("Fire() on an idle scheduler should report false")
	}

	var calls int
	s.Schedule(time.Second, func() { calls++ })
	s.Schedule(2*time.Second, func() { calls += 10 })

	if after, ok := s.Pending(); !ok || after != 2*time.Second {
		t.Errorf("Pending() = %v/%v, expected the latest schedule", after, ok)
	}
	if !s.Fire() || calls != 10 {
		t.Errorf("calls = %d, expected only the replacing tick to run", calls)
	}
	if s.Fire() {
		t.Error("a tick fires only once")
	}

	s.Schedule(time.Second, func() { calls++ })
	s.Cancel()
	if s.Fire() || calls != 10 {
		t.Error("cancelled tick should not run")
	}
}

func TestTimerSchedulerFires(t *testing.T) {
	s := NewTimerScheduler()
	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler()
	var fired atomic.Bool
	s.Schedule(50*time.Millisecond, func() { fired.Store(true) })
	s.Cancel()

	time.Sleep(150 * time.Millisecond)
	if fired.Load() {
		t.Error("cancelled timer fired")
	}
}

func TestTimerSchedulerReplaces(t *testing.T) {
	s := NewTimerScheduler()
	var first, second atomic.Bool
	done := make(chan struct{})

	s.Schedule(50*time.Millisecond, func() { first.Store(true) })
	s.Schedule(time.Millisecond, func() {
		second.Store(true)
		close(done)
	})

	<-done
	time.Sleep(100 * time.Millisecond)
	if first.Load() {
		t.Error("replaced timer fired")
	}
	if !second.Load() {
		t.Error("replacing timer did not fire")
	}
}
