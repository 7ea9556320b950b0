package core

import (
	"testing"
	"time"
)

// TestParkSignal_NotifyOneNeverBlocks tests that notification is best-effort
// Main test items:
// 1. NotifyOne on a full buffer returns immediately
// 2. Redundant notifications are dropped, not queued unboundedly
func TestParkSignal_NotifyOneNeverBlocks(t *testing.T) {
	s := newParkSignal(2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.NotifyOne()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyOne blocked on a full signal buffer")
	}

	if len(s.ch) != 2 {
		t.Errorf("buffered notifications = %d, want 2", len(s.ch))
	}
}

// TestParkSignal_ParkTimeoutElapses tests the bounded wait
func TestParkSignal_ParkTimeoutElapses(t *testing.T) {
	s := newParkSignal(1)

	start := time.Now()
	s.ParkTimeout(30 * time.Millisecond)
	elapsed := time.Since(start)

	if elapsed < 30*time.Millisecond {
		t.Errorf("ParkTimeout returned after %v, want >= 30ms", elapsed)
	}
}

// TestParkSignal_ParkWakesOnNotify tests that a pending notification ends the wait early
func TestParkSignal_ParkWakesOnNotify(t *testing.T) {
	s := newParkSignal(1)
	s.NotifyOne()

	start := time.Now()
	s.ParkTimeout(time.Second)
	elapsed := time.Since(start)

	if elapsed > 500*time.Millisecond {
		t.Errorf("ParkTimeout consumed %v despite pending notification", elapsed)
	}
}
