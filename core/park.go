package core

import "time"

// DefaultParkTimeout bounds how long an idle worker sleeps between queue
// checks. The timeout closes the race between "queue observed empty" and
// "task pushed + notify sent": a missed notification costs at most one
// timeout interval, never an indefinite stall.
const DefaultParkTimeout = 100 * time.Millisecond

// parkSignal is the shared parking signal: idle workers wait on it, every
// spawn and wake notifies it. The buffered channel plays the role of a
// condition variable with a bounded timed wait.
type parkSignal struct {
	ch chan struct{}
}

func newParkSignal(capacity int) *parkSignal {
	if capacity < 1 {
		capacity = 1
	}
	return &parkSignal{ch: make(chan struct{}, capacity)}
}

// NotifyOne wakes at most one parked worker. It never blocks: when the
// buffer is full there are already at least as many pending notifications
// as workers, so dropping this one is harmless. Waking a worker when no
// work exists is equally harmless; the worker loops, finds nothing, and
// parks again.
func (s *parkSignal) NotifyOne() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// ParkTimeout blocks until a notification arrives or the timeout elapses,
// whichever comes first.
func (s *parkSignal) ParkTimeout(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-s.ch:
	case <-timer.C:
	}
}
