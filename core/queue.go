package core

import "sync"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// fifo is an unbounded multi-producer multi-consumer FIFO queue.
//
// Push never blocks and never fails: the ready-queue has no backpressure.
// Ordering is FIFO per producer; interleaving across concurrent producers is
// unspecified. The backing slice is compacted once it shrinks well below its
// capacity so a submission burst does not pin memory forever.
type fifo[T any] struct {
	mu    sync.Mutex
	items []T
}

func newFIFO[T any]() *fifo[T] {
	return &fifo[T]{
		items: make([]T, 0, defaultQueueCap),
	}
}

func (q *fifo[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Pop removes and returns the oldest item. It never blocks; the second
// return value is false when the queue is empty.
func (q *fifo[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	item := q.items[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.items[0] = zero
	q.items = q.items[1:]
	q.maybeCompactLocked()

	return item, true
}

func (q *fifo[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *fifo[T]) maybeCompactLocked() {
	n := len(q.items)
	c := cap(q.items)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.items = make([]T, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]T, n, newCap)
	copy(newSlice, q.items)
	q.items = newSlice
}

// taskQueue is the ready-queue: tasks eligible for resumption. It is a
// defined type rather than an alias so the Task/queue reference cycle stays
// out of the generic instantiation graph.
type taskQueue struct {
	fifo[*Task]
}

func newTaskQueue() *taskQueue {
	return &taskQueue{fifo[*Task]{items: make([]*Task, 0, defaultQueueCap)}}
}
