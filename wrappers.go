package asyncruntime

import (
	"time"

	"github.com/Swind/go-async-runtime/core"
)

// =============================================================================
// Generic typed wrappers over the any-valued join surface
// =============================================================================

// The scheduler moves results around as type-tagged any values; these
// wrappers reconstitute them for callers that know the concrete type.

// JoinAs joins the handle and type-asserts the result to T.
//
// It panics when the computation itself panicked (re-raising the
// *PanicError) or when the result is not a T; both are programmer errors.
func JoinAs[T any](h *core.JoinHandle) T {
	v := h.Join()
	if perr, ok := v.(*core.PanicError); ok {
		panic(perr)
	}
	return v.(T)
}

// TypedJoinHandle is a JoinHandle whose result type is fixed at spawn time.
type TypedJoinHandle[R any] struct {
	inner *core.JoinHandle
}

// Join blocks until the result arrives and returns it as an R.
func (h *TypedJoinHandle[R]) Join() R {
	return JoinAs[R](h.inner)
}

// JoinTimeout waits up to d for the result; false means the timeout elapsed.
func (h *TypedJoinHandle[R]) JoinTimeout(d time.Duration) (R, bool) {
	v, ok := h.inner.JoinTimeout(d)
	if !ok {
		var zero R
		return zero, false
	}
	if perr, isPanic := v.(*core.PanicError); isPanic {
		panic(perr)
	}
	return v.(R), true
}

// Untyped returns the underlying JoinHandle.
func (h *TypedJoinHandle[R]) Untyped() *core.JoinHandle {
	return h.inner
}

// SpawnWithResult spawns f on handle and returns a typed join handle for a
// Future known to complete with an R.
func SpawnWithResult[R any](handle core.Handle, f core.Future) *TypedJoinHandle[R] {
	return &TypedJoinHandle[R]{inner: handle.Spawn(f)}
}

// SpawnBlockingWithResult runs fn on the thread pool and returns a typed
// join handle for its result.
func SpawnBlockingWithResult[R any](handle core.Handle, fn func() R) *TypedJoinHandle[R] {
	inner := handle.SpawnBlocking(func() any {
		return fn()
	})
	return &TypedJoinHandle[R]{inner: inner}
}

// BlockOnWithResult spawns f and synchronously joins its R-typed result on
// the calling goroutine. The BlockOn starvation caveat applies.
func BlockOnWithResult[R any](handle core.Handle, f core.Future) R {
	return JoinAs[R](handle.Spawn(f))
}
