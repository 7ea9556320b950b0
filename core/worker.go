package core

import "time"

// worker is one scheduler resumption loop, hosted on a thread-pool thread.
// It cycles through three states: check the local queue, check the shared
// global queue, park with a bounded timeout. There is no terminal state;
// the loop runs for the process lifetime.
type worker struct {
	id int

	// local is reserved for tasks spawned or woken from this worker, for
	// cache locality. The current feed path never populates it; every task
	// enters through the global queue.
	local  *taskQueue
	global *taskQueue

	signal      *parkSignal
	parkTimeout time.Duration

	logger       Logger
	panicHandler PanicHandler
}

func newWorker(id int, global *taskQueue, signal *parkSignal, cfg Config) *worker {
	return &worker{
		id:           id,
		local:        newTaskQueue(),
		global:       global,
		signal:       signal,
		parkTimeout:  cfg.ParkTimeout,
		logger:       cfg.Logger,
		panicHandler: cfg.PanicHandler,
	}
}

// run loops forever pulling ready tasks and resuming them inline. A
// resumption never yields control back to the loop mid-flight: the task
// either suspends or completes before the next dequeue.
func (w *worker) run() {
	for {
		task, ok := w.local.Pop()
		if !ok {
			task, ok = w.global.Pop()
		}
		if !ok {
			// Queues observed empty. Park, but with a timeout: a task
			// pushed between the check and the wait could have spent its
			// notification on a worker that was already awake.
			w.signal.ParkTimeout(w.parkTimeout)
			continue
		}

		w.logger.Debug("worker got task", F("worker", w.id), F("task", task.id))
		task.resume(w.id, w.panicHandler)
	}
}
