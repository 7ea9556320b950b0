package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Swind/go-async-runtime/core"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	tasksSpawnedTotal      prom.Counter
	taskDurationSeconds    prom.Histogram
	taskWakeTotal          prom.Counter
	pollSuspendedTotal     prom.Counter
	queueDepth             prom.Gauge
	blockingSubmittedTotal prom.Counter
	taskPanicTotal         prom.Counter
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "asyncruntime"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	spawned := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_spawned_total",
		Help:      "Total number of tasks submitted to the scheduler.",
	})
	duration := prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Time from task spawn to completion in seconds.",
		Buckets:   buckets,
	})
	wakes := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_wake_total",
		Help:      "Total number of wake protocol invocations.",
	})
	suspended := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "poll_suspended_total",
		Help:      "Total number of polls that left the task suspended.",
	})
	depth := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current ready-queue depth.",
	})
	blocking := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "blocking_submitted_total",
		Help:      "Total number of closures handed to the thread pool.",
	})
	panics := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of panics recovered from user code.",
	})

	var err error
	if spawned, err = registerCollector(reg, spawned); err != nil {
		return nil, err
	}
	if duration, err = registerCollector(reg, duration); err != nil {
		return nil, err
	}
	if wakes, err = registerCollector(reg, wakes); err != nil {
		return nil, err
	}
	if suspended, err = registerCollector(reg, suspended); err != nil {
		return nil, err
	}
	if depth, err = registerCollector(reg, depth); err != nil {
		return nil, err
	}
	if blocking, err = registerCollector(reg, blocking); err != nil {
		return nil, err
	}
	if panics, err = registerCollector(reg, panics); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		tasksSpawnedTotal:      spawned,
		taskDurationSeconds:    duration,
		taskWakeTotal:          wakes,
		pollSuspendedTotal:     suspended,
		queueDepth:             depth,
		blockingSubmittedTotal: blocking,
		taskPanicTotal:         panics,
	}, nil
}

// RecordTaskSpawned counts a task submission.
func (m *MetricsExporter) RecordTaskSpawned() {
	if m == nil {
		return
	}
	m.tasksSpawnedTotal.Inc()
}

// RecordTaskCompleted records spawn-to-completion latency.
func (m *MetricsExporter) RecordTaskCompleted(duration time.Duration) {
	if m == nil {
		return
	}
	m.taskDurationSeconds.Observe(duration.Seconds())
}

// RecordTaskWake counts a wake protocol invocation.
func (m *MetricsExporter) RecordTaskWake() {
	if m == nil {
		return
	}
	m.taskWakeTotal.Inc()
}

// RecordPollSuspended counts a poll that suspended.
func (m *MetricsExporter) RecordPollSuspended() {
	if m == nil {
		return
	}
	m.pollSuspendedTotal.Inc()
}

// RecordQueueDepth records ready-queue depth.
func (m *MetricsExporter) RecordQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// RecordBlockingSubmitted counts a thread-pool submission.
func (m *MetricsExporter) RecordBlockingSubmitted() {
	if m == nil {
		return
	}
	m.blockingSubmittedTotal.Inc()
}

// RecordTaskPanic counts a recovered user-code panic.
func (m *MetricsExporter) RecordTaskPanic(panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanicTotal.Inc()
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
