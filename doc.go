// Package asyncruntime provides a minimal cooperative-multitasking executor
// for Go.
//
// The runtime schedules suspendable computations (Futures) across a fixed
// pool of worker threads, resumes a computation when an external event wakes
// it, and delivers results through join handles, synchronously or
// asynchronously. It is designed to be embedded in a larger application as
// its concurrency substrate.
//
// # Quick Start
//
// Create a runtime at application startup; it registers itself as the
// current runtime:
//
//	handle := asyncruntime.NewRuntime(4, 2) // 4 workers, 2 blocking threads
//
// Spawn a computation and join its result:
//
//	jh := handle.Spawn(asyncruntime.Ready(42))
//	value := jh.Join() // 42
//
// Offload blocking work that must not occupy a worker's resumption loop:
//
//	jh := handle.SpawnBlocking(func() any {
//		return slowIO()
//	})
//
// # Key Concepts
//
// Future: one suspendable computation. Poll attempts progress once and
// either completes with a value or suspends. A suspended Future hands its
// Waker to an external readiness source (a timer, an I/O driver); calling
// Wake re-queues the computation so a worker polls it again.
//
// Handle: the capability for submitting work. Copy it freely; every copy
// submits to the same scheduler. The handle created by NewRuntime is also
// registered as the ambient runtime, reachable via Current().
//
// JoinHandle: the receive side of a one-shot result channel. Join blocks
// until the computation completes. Dropping a JoinHandle never cancels the
// computation; it only detaches result delivery.
//
// # Scheduling Model
//
// Distinct tasks resume in parallel on different workers, but a single task
// never runs concurrently with itself. There is no ordering guarantee among
// distinct ready tasks, no priorities, no cancellation, and no shutdown
// path: workers run for the process lifetime. Idle workers park on a shared
// signal with a bounded timeout, so a missed notification costs at most one
// timeout interval.
//
// # Example
//
//	import (
//		asyncruntime "github.com/Swind/go-async-runtime"
//	)
//
//	func main() {
//		handle := asyncruntime.NewRuntime(2, 2)
//
//		// A computation that suspends once and is woken externally.
//		woken := false
//		jh := handle.Spawn(asyncruntime.FutureFunc(func(w asyncruntime.Waker) (any, bool) {
//			if !woken {
//				woken = true
//				go func() {
//					time.Sleep(10 * time.Millisecond)
//					w.Wake()
//				}()
//				return nil, false
//			}
//			return "done", true
//		}))
//
//		println(jh.Join().(string))
//	}
//
// For observability adapters (Prometheus metrics, zerolog logging), see the
// observability subpackages.
package asyncruntime
