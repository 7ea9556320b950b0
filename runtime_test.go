package asyncruntime

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Swind/go-async-runtime/core"
)

func quietConfig() *core.Config {
	cfg := core.DefaultConfig()
	cfg.Logger = core.NewNoOpLogger()
	return cfg
}

// TestCurrent_PanicsWhenUnregistered tests the fatal usage error
// Given: no runtime has been registered
// When: Current() is called
// Then: it panics loudly instead of returning a zero handle
func TestCurrent_PanicsWhenUnregistered(t *testing.T) {
	clearCurrent()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Current() did not panic without a registration")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "no runtime registered") {
			t.Errorf("panic = %v, want message naming the missing registration", r)
		}
	}()

	Current()
}

// TestSetCurrent_SilentlyReplaces tests re-registration semantics
func TestSetCurrent_SilentlyReplaces(t *testing.T) {
	first := NewRuntimeWithConfig(1, 0, quietConfig())
	second := NewRuntimeWithConfig(2, 0, quietConfig())
	_ = first

	got := Current()
	if got.Pool() != second.Pool() {
		t.Error("Current() does not reflect the latest registration")
	}
}

// TestNewRuntime_RegistersCurrent tests that construction installs the handle
func TestNewRuntime_RegistersCurrent(t *testing.T) {
	clearCurrent()

	h := NewRuntimeWithConfig(1, 1, quietConfig())

	got := Current()
	if got.Pool() != h.Pool() {
		t.Error("NewRuntime did not register the returned handle")
	}

	// The registered handle must be usable directly.
	v, ok := got.Spawn(core.Ready("ambient")).JoinTimeout(2 * time.Second)
	if !ok || v != "ambient" {
		t.Errorf("ambient handle spawn = %v, %v", v, ok)
	}
}

// TestWithRuntime_ContextRoundTrip tests the context-based ambient helper
func TestWithRuntime_ContextRoundTrip(t *testing.T) {
	h := NewRuntimeWithConfig(1, 0, quietConfig())

	ctx := WithRuntime(context.Background(), h)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext found no handle")
	}
	if got.Pool() != h.Pool() {
		t.Error("FromContext returned a different handle")
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext on a bare context reported a handle")
	}
}
