package asyncruntime

import "github.com/Swind/go-async-runtime/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the asyncruntime package for most use cases.

// Future is one suspendable computation
type Future = core.Future

// FutureFunc adapts a plain function to the Future interface
type FutureFunc = core.FutureFunc

// Waker re-queues a suspended computation when its readiness event fires
type Waker = core.Waker

// Handle is the capability for submitting work to a runtime
type Handle = core.Handle

// JoinHandle retrieves a spawned computation's eventual result
type JoinHandle = core.JoinHandle

// BlockingFunc is an arbitrary blocking closure for SpawnBlocking
type BlockingFunc = core.BlockingFunc

// ThreadPool runs blocking closures on a fixed thread budget
type ThreadPool = core.ThreadPool

// Config holds tuning knobs and handlers for a runtime
type Config = core.Config

// Logger is the structured logging interface used by the scheduler
type Logger = core.Logger

// Field is a structured logging key-value pair
type Field = core.Field

// Metrics is the scheduler metrics interface
type Metrics = core.Metrics

// PanicHandler receives panics recovered from user code
type PanicHandler = core.PanicHandler

// PanicError is delivered to a join handle when the computation panicked
type PanicError = core.PanicError

// Convenience re-exports
var (
	Ready         = core.Ready
	F             = core.F
	DefaultConfig = core.DefaultConfig
	NewThreadPool = core.NewThreadPool
)

// DefaultParkTimeout bounds an idle worker's sleep between queue checks
const DefaultParkTimeout = core.DefaultParkTimeout
