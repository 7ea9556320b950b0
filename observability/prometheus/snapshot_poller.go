package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// QueueSnapshotProvider provides current ready-queue depth snapshots.
// core.Handle satisfies it.
type QueueSnapshotProvider interface {
	QueuedTaskCount() int
}

// PoolSnapshotProvider provides current thread-pool stats snapshots.
// *core.ThreadPool satisfies it.
type PoolSnapshotProvider interface {
	ThreadCount() int
	QueuedJobCount() int
	ActiveJobCount() int
}

// SnapshotPoller periodically exports queue and pool snapshots into
// Prometheus gauges. Counters are pushed by the MetricsExporter as events
// happen; gauges sampled here cover state that only the runtime can report.
type SnapshotPoller struct {
	interval time.Duration

	mu    sync.RWMutex
	queue QueueSnapshotProvider
	pool  PoolSnapshotProvider

	queueDepth  prom.Gauge
	poolThreads prom.Gauge
	poolQueued  prom.Gauge
	poolActive  prom.Gauge

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(namespace string, reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if namespace == "" {
		namespace = "asyncruntime"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	queueDepth := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "ready_queue_depth",
		Help:      "Sampled ready-queue depth.",
	})
	poolThreads := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_threads",
		Help:      "Thread-pool thread budget.",
	})
	poolQueued := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_queued_jobs",
		Help:      "Closures waiting for a free pool thread.",
	})
	poolActive := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_active_jobs",
		Help:      "Closures currently executing on the pool.",
	})

	var err error
	if queueDepth, err = registerCollector(reg, queueDepth); err != nil {
		return nil, err
	}
	if poolThreads, err = registerCollector(reg, poolThreads); err != nil {
		return nil, err
	}
	if poolQueued, err = registerCollector(reg, poolQueued); err != nil {
		return nil, err
	}
	if poolActive, err = registerCollector(reg, poolActive); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:    interval,
		queueDepth:  queueDepth,
		poolThreads: poolThreads,
		poolQueued:  poolQueued,
		poolActive:  poolActive,
	}, nil
}

// ObserveQueue sets the ready-queue provider to sample.
func (p *SnapshotPoller) ObserveQueue(q QueueSnapshotProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = q
}

// ObservePool sets the thread-pool provider to sample.
func (p *SnapshotPoller) ObservePool(pool PoolSnapshotProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pool = pool
}

// Start begins periodic sampling. A second Start without a Stop is a no-op.
func (p *SnapshotPoller) Start() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx)
}

// Stop halts sampling and waits for the loop to exit.
func (p *SnapshotPoller) Stop() {
	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	done := p.done
	p.stateMu.Unlock()

	<-done
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sample()
		case <-ctx.Done():
			return
		}
	}
}

func (p *SnapshotPoller) sample() {
	p.mu.RLock()
	queue := p.queue
	pool := p.pool
	p.mu.RUnlock()

	if queue != nil {
		p.queueDepth.Set(float64(queue.QueuedTaskCount()))
	}
	if pool != nil {
		p.poolThreads.Set(float64(pool.ThreadCount()))
		p.poolQueued.Set(float64(pool.QueuedJobCount()))
		p.poolActive.Set(float64(pool.ActiveJobCount()))
	}
}
