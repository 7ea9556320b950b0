package core

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is one schedulable unit: a suspended or actively-resuming Future plus
// the means to re-queue and complete it. A Task is shared between the
// ready-queue entries holding it, every outstanding Waker derived from a
// previous poll, and the worker currently resuming it; the last reference
// keeps it alive, there is no single owner.
//
// Task implements Waker: handing a task to a readiness source as its own
// waker is the wake protocol.
type Task struct {
	id uuid.UUID

	// mu is the exclusive resumption guard: at most one worker polls the
	// future at a time. future is nil once the task has completed and is
	// never polled again.
	mu     sync.Mutex
	future Future

	// queue is the origin ready-queue the task re-enters on wake.
	queue  *taskQueue
	signal *parkSignal

	// result is the one-shot channel the completion value is pushed to.
	result chan any

	spawnedAt time.Time

	logger  Logger
	metrics Metrics
}

func newTask(f Future, queue *taskQueue, signal *parkSignal, logger Logger, metrics Metrics) *Task {
	return &Task{
		id:        uuid.New(),
		future:    f,
		queue:     queue,
		signal:    signal,
		result:    make(chan any, 1),
		spawnedAt: time.Now(),
		logger:    logger,
		metrics:   metrics,
	}
}

// ID returns the task's identifier, used for log and metric correlation.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// Wake re-queues the task on its origin ready-queue and notifies one parked
// worker. Callable from any goroutine, any number of times, concurrently
// with an in-progress poll of the same task, and after completion: a
// completed task is simply dequeued and discarded by whichever worker picks
// it up. Waking is at-least-once; duplicate wakes cost one redundant
// dequeue, never a double resume.
func (t *Task) Wake() {
	t.logger.Debug("waking task", F("task", t.id))
	t.metrics.RecordTaskWake()

	t.queue.Push(t)
	t.metrics.RecordQueueDepth(t.queue.Len())
	t.signal.NotifyOne()
}

// resume attempts progress on the future exactly once, inline on the calling
// worker. Suspended tasks are left alone until the next Wake; completed
// tasks deliver their value and drop the future so any later dequeue is a
// no-op.
func (t *Task) resume(workerID int, panicHandler PanicHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.future == nil {
		// Redundant wake delivered after completion.
		t.logger.Debug("discarding completed task", F("task", t.id))
		return
	}

	var (
		value any
		ready bool
	)

	panicked := true
	func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				panicHandler.HandlePanic(workerID, r, stack)
				t.metrics.RecordTaskPanic(r)
				t.future = nil
				t.deliver(&PanicError{Value: r, Stack: stack})
			}
		}()
		value, ready = t.future.Poll(t)
		panicked = false
	}()
	if panicked {
		return
	}

	if !ready {
		t.logger.Debug("task not ready", F("task", t.id))
		t.metrics.RecordPollSuspended()
		return
	}

	t.logger.Debug("task finished", F("task", t.id))
	t.metrics.RecordTaskCompleted(time.Since(t.spawnedAt))
	t.future = nil
	t.deliver(value)
}

// deliver pushes the completion value to the result channel. The send is
// non-blocking: when the join handle was dropped the value sits in the
// buffer until the channel is collected, which is the expected benign race,
// not an error.
func (t *Task) deliver(value any) {
	select {
	case t.result <- value:
	default:
	}
}
