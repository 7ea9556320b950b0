package asyncruntime

import (
	"fmt"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Swind/go-async-runtime/core"
)

// EnvConfig holds the runtime sizing knobs that can be supplied through the
// environment. Unset variables keep the defaults from DefaultEnvConfig.
type EnvConfig struct {
	// Workers is the number of resumption workers.
	Workers int `env:"ASYNCRT_WORKERS"`

	// MaxBlockingThreads is the number of extra pool threads reserved for
	// SpawnBlocking closures.
	MaxBlockingThreads int `env:"ASYNCRT_MAX_BLOCKING"`

	// ParkTimeout bounds how long an idle worker sleeps between queue checks.
	ParkTimeout time.Duration `env:"ASYNCRT_PARK_TIMEOUT"`
}

// DefaultEnvConfig returns the sizing used when the environment is silent:
// one worker per CPU and an equal budget of blocking threads.
func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		Workers:            runtime.NumCPU(),
		MaxBlockingThreads: runtime.NumCPU(),
		ParkTimeout:        core.DefaultParkTimeout,
	}
}

// ConfigFromEnv reads EnvConfig from the process environment on top of the
// defaults and validates it.
func ConfigFromEnv() (EnvConfig, error) {
	cfg := DefaultEnvConfig()
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("asyncruntime: parsing env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c EnvConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("asyncruntime: workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxBlockingThreads < 0 {
		return fmt.Errorf("asyncruntime: maxBlockingThreads cannot be negative, got %d", c.MaxBlockingThreads)
	}
	if c.ParkTimeout <= 0 {
		return fmt.Errorf("asyncruntime: parkTimeout must be positive, got %v", c.ParkTimeout)
	}
	return nil
}

// NewRuntimeFromEnv builds a runtime sized by the environment and registers
// it as the current runtime.
func NewRuntimeFromEnv() (core.Handle, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return core.Handle{}, err
	}

	coreCfg := core.DefaultConfig()
	coreCfg.ParkTimeout = cfg.ParkTimeout

	return NewRuntimeWithConfig(cfg.Workers, cfg.MaxBlockingThreads, coreCfg), nil
}
