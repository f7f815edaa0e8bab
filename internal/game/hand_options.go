package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	clock  quartz.Clock
	logger *log.Logger
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
}

// WithClock sets the clock used to timestamp logged actions. Tests pass a
// quartz mock so reconstructed logs are byte-for-byte comparable.
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger used for debug tracing of action flow
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
