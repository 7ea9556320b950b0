package core

import (
	"runtime/debug"
	"sync/atomic"
	"time"
)

// BlockingFunc is an arbitrary blocking closure submitted to the thread pool.
// Its return value is delivered through the closure's JoinHandle.
type BlockingFunc func() any

type poolJob struct {
	fn     BlockingFunc
	result chan any
}

// ThreadPool owns a fixed budget of long-lived worker goroutines and runs
// arbitrary blocking closures on them. It backs two callers: user-requested
// blocking work that must not occupy a scheduler worker's resumption loop,
// and the scheduler workers' own run loops, each hosted on one pool thread
// for the process lifetime.
//
// The pool applies no backpressure: submission never blocks, closures queue
// until a thread frees up.
type ThreadPool struct {
	threads     int
	queue       *fifo[poolJob]
	signal      *parkSignal
	parkTimeout time.Duration

	active int32

	logger       Logger
	panicHandler PanicHandler
}

// NewThreadPool reserves the given number of pool threads and starts them.
func NewThreadPool(threads int, cfg *Config) *ThreadPool {
	if threads < 1 {
		threads = 1
	}
	conf := cfg.normalized()

	p := &ThreadPool{
		threads:      threads,
		queue:        newFIFO[poolJob](),
		signal:       newParkSignal(threads * 2),
		parkTimeout:  conf.ParkTimeout,
		logger:       conf.Logger,
		panicHandler: conf.PanicHandler,
	}

	for i := 0; i < threads; i++ {
		go p.thread(i)
	}

	return p
}

// SpawnBlocking queues fn to run on a pool thread and returns a handle for
// its result. A panic inside fn is recovered, reported to the pool's
// PanicHandler, and delivered to the handle as a *PanicError.
func (p *ThreadPool) SpawnBlocking(fn BlockingFunc) *JoinHandle {
	job := poolJob{fn: fn, result: make(chan any, 1)}
	p.queue.Push(job)
	p.signal.NotifyOne()
	return newJoinHandle(job.result)
}

// ThreadCount returns the pool's fixed thread budget.
func (p *ThreadPool) ThreadCount() int {
	return p.threads
}

// QueuedJobCount returns the number of closures waiting for a free thread.
func (p *ThreadPool) QueuedJobCount() int {
	return p.queue.Len()
}

// ActiveJobCount returns the number of closures currently executing.
func (p *ThreadPool) ActiveJobCount() int {
	return int(atomic.LoadInt32(&p.active))
}

// thread is the run loop of one pool thread.
func (p *ThreadPool) thread(id int) {
	for {
		job, ok := p.queue.Pop()
		if !ok {
			p.signal.ParkTimeout(p.parkTimeout)
			continue
		}
		p.runJob(id, job)
	}
}

func (p *ThreadPool) runJob(id int, job poolJob) {
	atomic.AddInt32(&p.active, 1)
	defer atomic.AddInt32(&p.active, -1)

	var value any
	func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				p.panicHandler.HandlePanic(id, r, stack)
				value = &PanicError{Value: r, Stack: stack}
			}
		}()
		value = job.fn()
	}()

	// Non-blocking: the caller may have dropped the handle.
	select {
	case job.result <- value:
	default:
	}
}
