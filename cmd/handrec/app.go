package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handrecorder/internal/config"
	"github.com/lox/handrecorder/internal/hand"
	"github.com/lox/handrecorder/internal/store"
)

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" help:"Path to the HCL config file" default:"handrec.hcl" type:"path"`
	Store   string `help:"Directory hands are stored in, overrides store_dir" type:"path"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `name:"no-color" help:"Disable coloured output"`
}

// app is what a command runs against once flags and config are resolved
type app struct {
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
	clock  quartz.Clock
	out    io.Writer
}

func (g *Globals) open() (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Store != "" {
		cfg.StoreDir = g.Store
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}

	level := cfg.Level()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	return newApp(cfg, logger, quartz.NewReal(), os.Stdout)
}

func newApp(cfg *config.Config, logger *log.Logger, clock quartz.Clock, out io.Writer) (*app, error) {
	st, err := store.Open(cfg.StoreDir, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &app{cfg: cfg, store: st, logger: logger, clock: clock, out: out}, nil
}

func (a *app) recorderOptions() []hand.Option {
	return []hand.Option{hand.WithClock(a.clock), hand.WithLogger(a.logger)}
}

// load reopens a stored hand for editing
func (a *app) load(id string) (*hand.Recorder, error) {
	rec, err := a.store.Load(id)
	if err != nil {
		return nil, err
	}
	return hand.Open(rec, a.recorderOptions()...)
}

func (a *app) save(r *hand.Recorder) error {
	rec := r.Record()
	if err := a.store.Save(rec); err != nil {
		return err
	}
	a.logger.Debug("Saved hand", "id", rec.ID, "path", a.store.Path(rec.ID))
	return nil
}

// edit loads a hand, applies fn, saves it and renders the betting state
func (a *app) edit(id string, fn func(r *hand.Recorder) error) error {
	r, err := a.load(id)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	if err := a.save(r); err != nil {
		return err
	}
	renderState(a.out, r.Record(), r.State())
	return nil
}
