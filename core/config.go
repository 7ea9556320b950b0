package core

import "time"

// Config holds tuning knobs and handlers for a runtime.
// All fields are optional; zero values fall back to defaults.
type Config struct {
	// ParkTimeout bounds how long an idle worker sleeps before re-checking
	// the ready-queue. Defaults to DefaultParkTimeout.
	ParkTimeout time.Duration

	// Logger receives scheduler debug events. Defaults to NoOpLogger.
	Logger Logger

	// Metrics is called to record scheduling metrics. Defaults to NilMetrics.
	Metrics Metrics

	// PanicHandler is called when user code panics. Defaults to
	// DefaultPanicHandler.
	PanicHandler PanicHandler
}

// DefaultConfig returns a config with default handlers.
func DefaultConfig() *Config {
	return &Config{
		ParkTimeout:  DefaultParkTimeout,
		Logger:       &NoOpLogger{},
		Metrics:      &NilMetrics{},
		PanicHandler: &DefaultPanicHandler{},
	}
}

// normalized returns a copy of the config with every unset field replaced
// by its default, so the scheduler never has to nil-check handlers.
func (c *Config) normalized() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.ParkTimeout <= 0 {
		out.ParkTimeout = DefaultParkTimeout
	}
	if out.Logger == nil {
		out.Logger = &NoOpLogger{}
	}
	if out.Metrics == nil {
		out.Metrics = &NilMetrics{}
	}
	if out.PanicHandler == nil {
		out.PanicHandler = &DefaultPanicHandler{}
	}
	return out
}
