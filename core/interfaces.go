package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling panics escaping user code
// =============================================================================

// PanicHandler is called when user code panics, either a blocking closure
// running on the thread pool or a Future.Poll call inside a worker loop.
// The panic never takes the hosting worker down: it is recovered, reported
// here, and delivered to the attached join handle as a *PanicError.
//
// Implementations must be thread-safe as they may be called concurrently.
type PanicHandler interface {
	// HandlePanic is called with the recovered panic value.
	//
	// Parameters:
	// - workerID: the pool thread the panic occurred on
	// - panicInfo: the panic value recovered from the user code
	// - stackTrace: the stack trace at the time of panic
	HandlePanic(workerID int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(workerID int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %d] Panic: %v\nStack trace:\n%s",
		workerID, panicInfo, stackTrace)
}

// PanicError is the value delivered to a join handle when the underlying
// computation panicked. Callers that type-assert join results should check
// for it first.
type PanicError struct {
	// Value is the recovered panic value.
	Value any

	// Stack is the stack trace captured at recovery time.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("computation panicked: %v", e.Value)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting scheduler metrics.
// Implementations can send metrics to monitoring systems; see the
// observability/prometheus package.
//
// Methods should be non-blocking and fast to avoid impacting scheduling.
type Metrics interface {
	// RecordTaskSpawned records that a task was submitted to the scheduler.
	RecordTaskSpawned()

	// RecordTaskCompleted records that a task finished, with the time from
	// spawn to completion.
	RecordTaskCompleted(duration time.Duration)

	// RecordTaskWake records one invocation of the wake protocol.
	RecordTaskWake()

	// RecordPollSuspended records a poll that left the task suspended.
	RecordPollSuspended()

	// RecordQueueDepth records the current ready-queue depth.
	RecordQueueDepth(depth int)

	// RecordBlockingSubmitted records a closure handed to the thread pool.
	RecordBlockingSubmitted()

	// RecordTaskPanic records that user code panicked during execution.
	RecordTaskPanic(panicInfo any)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskSpawned is a no-op.
func (m *NilMetrics) RecordTaskSpawned() {}

// RecordTaskCompleted is a no-op.
func (m *NilMetrics) RecordTaskCompleted(duration time.Duration) {}

// RecordTaskWake is a no-op.
func (m *NilMetrics) RecordTaskWake() {}

// RecordPollSuspended is a no-op.
func (m *NilMetrics) RecordPollSuspended() {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(depth int) {}

// RecordBlockingSubmitted is a no-op.
func (m *NilMetrics) RecordBlockingSubmitted() {}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(panicInfo any) {}
