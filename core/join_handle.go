package core

import "time"

// JoinHandle owns the receive side of a one-shot result channel for a
// spawned computation. Dropping a JoinHandle does not cancel the underlying
// task; it only detaches result delivery, which then becomes a silent no-op.
type JoinHandle struct {
	result <-chan any
}

func newJoinHandle(result <-chan any) *JoinHandle {
	return &JoinHandle{result: result}
}

// Join blocks the calling goroutine until the computation's result arrives.
// The result is the value the computation completed with, or a *PanicError
// when it panicked. A computation that suspends and is never woken never
// completes; Join on its handle blocks forever. Use JoinTimeout for a
// bounded wait.
func (h *JoinHandle) Join() any {
	return <-h.result
}

// JoinTimeout waits up to d for the result. The second return value is
// false when the timeout elapsed first; the handle stays usable.
func (h *JoinHandle) JoinTimeout(d time.Duration) (any, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case v := <-h.result:
		return v, true
	case <-timer.C:
		return nil, false
	}
}
