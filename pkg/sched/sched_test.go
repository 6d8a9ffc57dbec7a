package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_CoalescesBurst(t *testing.T) {
	s := New(20 * time.Millisecond)

	var ran atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		i := int32(i)
		s.Defer(func() {
			ran.Add(1)
			last.Store(i)
		})
	}

	time.Sleep(100 * time.Millisecond)

	if got := ran.Load(); got != 1 {
		t.Errorf("ran %d deferred functions, want the burst coalesced to 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("ran deferral %d, want the latest (5)", got)
	}
}

func TestScheduler_FlushRunsImmediately(t *testing.T) {
	s := New(time.Hour)

	var ran atomic.Bool
	s.Defer(func() { ran.Store(true) })
	s.Flush()

	if !ran.Load() {
		t.Error("Flush did not run the pending work")
	}

	// Nothing left to fire later.
	s.Flush()
}

func TestScheduler_StopDiscards(t *testing.T) {
	s := New(10 * time.Millisecond)

	var ran atomic.Bool
	s.Defer(func() { ran.Store(true) })
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	if ran.Load() {
		t.Error("Stop did not cancel the pending work")
	}
}

func TestScheduler_SequentialDeferralsBothRun(t *testing.T) {
	s := New(10 * time.Millisecond)

	var ran atomic.Int32
	s.Defer(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)
	s.Defer(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)

	if got := ran.Load(); got != 2 {
		t.Errorf("ran %d, want 2 separate deferrals", got)
	}
}
