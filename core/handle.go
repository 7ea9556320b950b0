package core

// Handle is the public capability used to submit work to a runtime. It is a
// small value type holding shared references only: copy it freely, every
// copy submits to the same scheduler.
type Handle struct {
	queue   *taskQueue
	signal  *parkSignal
	pool    *ThreadPool
	logger  Logger
	metrics Metrics
}

// NewRuntime reserves workerCount+maxBlockingThreads thread-pool threads,
// starts workerCount resumption loops each hosted on one pool thread, and
// returns the submission handle. The remaining pool threads serve
// SpawnBlocking closures.
//
// The runtime has no shutdown path: workers run for the process lifetime.
func NewRuntime(workerCount, maxBlockingThreads int, cfg *Config) Handle {
	if workerCount < 1 {
		workerCount = 1
	}
	if maxBlockingThreads < 0 {
		maxBlockingThreads = 0
	}
	conf := cfg.normalized()

	pool := NewThreadPool(workerCount+maxBlockingThreads, &conf)
	queue := newTaskQueue()
	signal := newParkSignal(workerCount * 2)

	h := Handle{
		queue:   queue,
		signal:  signal,
		pool:    pool,
		logger:  conf.Logger,
		metrics: conf.Metrics,
	}

	for i := 0; i < workerCount; i++ {
		w := newWorker(i, queue, signal, conf)
		pool.SpawnBlocking(func() any {
			w.run()
			return nil
		})
	}

	h.logger.Info("runtime started",
		F("workers", workerCount),
		F("maxBlockingThreads", maxBlockingThreads))

	return h
}

// Spawn wraps f in a task with a fresh one-shot result channel, places it on
// the shared ready-queue, and notifies one parked worker. The notification
// is best-effort: waking a worker when no work remains is harmless, and a
// burst of spawns relies on notified workers looping back for more work or
// on the periodic park timeout.
func (h Handle) Spawn(f Future) *JoinHandle {
	task := newTask(f, h.queue, h.signal, h.logger, h.metrics)

	h.logger.Debug("spawning task", F("task", task.id))
	h.metrics.RecordTaskSpawned()

	h.queue.Push(task)
	h.metrics.RecordQueueDepth(h.queue.Len())
	h.signal.NotifyOne()

	return newJoinHandle(task.result)
}

// SpawnBlocking bypasses the task machinery entirely and delegates fn to the
// thread pool, for CPU-bound or blocking work that must not occupy a
// worker's resumption loop.
func (h Handle) SpawnBlocking(fn BlockingFunc) *JoinHandle {
	h.metrics.RecordBlockingSubmitted()
	return h.pool.SpawnBlocking(fn)
}

// BlockOn spawns f and synchronously joins its result on the calling
// goroutine.
//
// Do not call BlockOn from inside a Future.Poll of the same runtime when
// every worker could end up blocked on it; that starves the runtime. This
// is a usage constraint, not runtime-enforced.
func (h Handle) BlockOn(f Future) any {
	return h.Spawn(f).Join()
}

// QueuedTaskCount returns the current depth of the shared ready-queue.
func (h Handle) QueuedTaskCount() int {
	return h.queue.Len()
}

// Pool returns the thread pool backing this runtime.
func (h Handle) Pool() *ThreadPool {
	return h.pool
}
