package core

// =============================================================================
// Future: the suspendable computation
// =============================================================================

// Waker is the capability handed to a Future on every poll. A suspended
// Future must hand the Waker to whatever external readiness source it is
// waiting on; calling Wake re-queues the owning task so a worker polls it
// again. Wake is safe to call from any goroutine, any number of times,
// concurrently, and even after the task has already completed.
type Waker interface {
	Wake()
}

// Future is one suspendable computation.
//
// Poll attempts to make progress exactly once. It returns (value, true) when
// the computation is complete, or (nil, false) when it is suspended. A Future
// that returns false must have arranged for waker.Wake() to be invoked when
// it can make progress again; a suspended Future that never wakes is never
// polled again.
//
// Poll is never invoked concurrently for the same task: the scheduler holds
// the task's exclusive guard for the duration of the call.
type Future interface {
	Poll(waker Waker) (any, bool)
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc func(waker Waker) (any, bool)

// Poll calls f.
func (f FutureFunc) Poll(waker Waker) (any, bool) {
	return f(waker)
}

// Ready returns a Future that completes with v on its first poll.
func Ready(v any) Future {
	return FutureFunc(func(Waker) (any, bool) {
		return v, true
	})
}
