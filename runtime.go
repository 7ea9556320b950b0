package asyncruntime

import (
	"context"
	"sync"

	"github.com/Swind/go-async-runtime/core"
)

// NewRuntime reserves workerCount+maxBlockingThreads pool threads, starts
// workerCount resumption workers, registers the returned handle as the
// current runtime, and returns it.
func NewRuntime(workerCount, maxBlockingThreads int) core.Handle {
	return NewRuntimeWithConfig(workerCount, maxBlockingThreads, core.DefaultConfig())
}

// NewRuntimeWithConfig is NewRuntime with explicit logger, metrics, panic
// handler, and park-timeout configuration.
func NewRuntimeWithConfig(workerCount, maxBlockingThreads int, cfg *core.Config) core.Handle {
	handle := core.NewRuntime(workerCount, maxBlockingThreads, cfg)
	SetCurrent(handle)
	return handle
}

// =============================================================================
// Ambient registration
// =============================================================================

var (
	currentMu     sync.Mutex
	currentHandle *core.Handle
)

// SetCurrent installs handle as the current runtime. A second call silently
// replaces the prior registration.
func SetCurrent(handle core.Handle) {
	currentMu.Lock()
	defer currentMu.Unlock()
	currentHandle = &handle
}

// Current returns the registered runtime handle. It panics if no runtime
// was registered; call NewRuntime or SetCurrent first.
func Current() core.Handle {
	currentMu.Lock()
	defer currentMu.Unlock()

	if currentHandle == nil {
		panic("asyncruntime: no runtime registered, call NewRuntime or SetCurrent first")
	}
	return *currentHandle
}

// clearCurrent drops the registration. Test hook.
func clearCurrent() {
	currentMu.Lock()
	defer currentMu.Unlock()
	currentHandle = nil
}

// =============================================================================
// Context Helper
// =============================================================================

type handleKeyType struct{}

var handleKey handleKeyType

// WithRuntime returns a context carrying handle, for call paths that prefer
// explicit propagation over the process-wide registration.
func WithRuntime(ctx context.Context, handle core.Handle) context.Context {
	return context.WithValue(ctx, handleKey, handle)
}

// FromContext extracts the runtime handle installed by WithRuntime.
func FromContext(ctx context.Context) (core.Handle, bool) {
	if v := ctx.Value(handleKey); v != nil {
		return v.(core.Handle), true
	}
	return core.Handle{}, false
}
