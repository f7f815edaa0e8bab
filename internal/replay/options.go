package replay

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handrecorder/internal/game"
)

// Option configures a Session
type Option func(*options)

type options struct {
	clock  quartz.Clock
	logger *log.Logger
}

func defaultOptions() options {
	return options{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
}

// WithClock sets the clock every engine the session builds stamps actions with
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger shared by the session and its engines
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func (o options) engineOptions() []game.EngineOption {
	return []game.EngineOption{game.WithClock(o.clock), game.WithLogger(o.logger)}
}
