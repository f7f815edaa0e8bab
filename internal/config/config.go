// Package config loads the recorder configuration: where hands are stored,
// how verbose logging is, and the table presets new hands start from.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
)

// DefaultFile is where the CLI looks for configuration
const DefaultFile = "handrec.hcl"

// Config represents the complete recorder configuration
type Config struct {
	StoreDir     string  `hcl:"store_dir,optional"`
	LogLevel     string  `hcl:"log_level,optional"`
	DefaultTable string  `hcl:"default_table,optional"`
	Tables       []Table `hcl:"table,block"`
}

// Table is a named preset for the table a hand is played at
type Table struct {
	Name           string         `hcl:"name,label"`
	SmallBlind     int            `hcl:"small_blind"`
	BigBlind       int            `hcl:"big_blind"`
	EffectiveStack int            `hcl:"effective_stack,optional"`
	Positions      []string       `hcl:"positions,optional"`
	Stacks         map[string]int `hcl:"stacks,optional"`
	Stake          string         `hcl:"stake,optional"`
	Casino         string         `hcl:"casino,optional"`
	Location       string         `hcl:"location,optional"`
	GameType       string         `hcl:"game_type,optional"`
	Straddle       *Straddle      `hcl:"straddle,block"`
	Rake           *Rake          `hcl:"rake,block"`
}

// Straddle is the optional straddle block of a table preset
type Straddle struct {
	Position string `hcl:"position"`
	Amount   int    `hcl:"amount"`
}

// Rake is the optional rake block of a table preset
type Rake struct {
	Structure  string  `hcl:"structure"`
	Percentage float64 `hcl:"percentage,optional"`
	Cap        int     `hcl:"cap,optional"`
	Amount     int     `hcl:"amount,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		StoreDir:     "hands",
		LogLevel:     "info",
		DefaultTable: "1-2",
		Tables: []Table{
			{
				Name:           "1-2",
				SmallBlind:     1,
				BigBlind:       2,
				EffectiveStack: 200,
				Positions:      positionNames(game.Positions6Max),
				Stake:          "$1/$2",
				GameType:       string(hand.Cash),
			},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything left out
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()
	if cfg.StoreDir == "" {
		cfg.StoreDir = defaults.StoreDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = defaults.Tables
	}
	if cfg.DefaultTable == "" {
		cfg.DefaultTable = cfg.Tables[0].Name
	}

	for i := range cfg.Tables {
		t := &cfg.Tables[i]
		if t.EffectiveStack == 0 {
			t.EffectiveStack = t.BigBlind * 100 // 100 big blinds deep
		}
		if len(t.Positions) == 0 {
			t.Positions = positionNames(game.Positions6Max)
		}
		if t.Stake == "" {
			t.Stake = fmt.Sprintf("$%d/$%d", t.SmallBlind, t.BigBlind)
		}
		if t.GameType == "" {
			t.GameType = string(hand.Cash)
		}
	}

	return &cfg, nil
}

// Validate validates the configuration, including every table preset
func (c *Config) Validate() error {
	var errs []error

	if c.StoreDir == "" {
		errs = append(errs, errors.New("store_dir must be set"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	if len(c.Tables) == 0 {
		errs = append(errs, errors.New("at least one table must be configured"))
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("table %s: defined twice", t.Name))
		}
		seen[t.Name] = true

		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
		}
	}
	if c.DefaultTable != "" && !seen[c.DefaultTable] {
		errs = append(errs, fmt.Errorf("default_table %q is not defined", c.DefaultTable))
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level, info if it does not parse
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Table returns a preset by name. An empty name selects the default table.
func (c *Config) Table(name string) (*Table, bool) {
	if name == "" {
		name = c.DefaultTable
	}
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], true
		}
	}
	return nil, false
}

func (t Table) validate() error {
	cfg, err := t.TableConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch hand.GameType(t.GameType) {
	case hand.Cash, hand.Tournament:
	default:
		return fmt.Errorf("unknown game_type %q", t.GameType)
	}
	if t.Rake != nil {
		if _, err := t.Rake.rake(); err != nil {
			return err
		}
	}
	return nil
}

// TableConfig converts the preset into the config engines are built from
func (t Table) TableConfig() (game.TableConfig, error) {
	cfg := game.TableConfig{
		SmallBlind:     t.SmallBlind,
		BigBlind:       t.BigBlind,
		EffectiveStack: t.EffectiveStack,
	}
	for _, name := range t.Positions {
		pos, err := game.ParsePosition(name)
		if err != nil {
			return cfg, err
		}
		cfg.ActivePositions = append(cfg.ActivePositions, pos)
	}
	if len(t.Stacks) > 0 {
		cfg.CustomStacks = make(map[game.Position]int, len(t.Stacks))
		for name, stack := range t.Stacks {
			pos, err := game.ParsePosition(name)
			if err != nil {
				return cfg, fmt.Errorf("stacks: %w", err)
			}
			cfg.CustomStacks[pos] = stack
		}
	}
	if t.Straddle != nil {
		pos, err := game.ParsePosition(t.Straddle.Position)
		if err != nil {
			return cfg, fmt.Errorf("straddle: %w", err)
		}
		cfg.Straddle = &game.Straddle{Position: pos, Amount: t.Straddle.Amount}
	}
	return cfg, nil
}

// Record returns a blank hand record seated at this table
func (t Table) Record() (hand.Record, error) {
	cfg, err := t.TableConfig()
	if err != nil {
		return hand.Record{}, err
	}
	rec := hand.Record{
		StakeLevel: t.Stake,
		Casino:     t.Casino,
		Location:   t.Location,
		GameType:   hand.GameType(t.GameType),
		Table:      cfg,
	}
	if t.Rake != nil {
		if rec.Rake, err = t.Rake.rake(); err != nil {
			return hand.Record{}, err
		}
	}
	return rec, nil
}

func (r Rake) rake() (hand.Rake, error) {
	out := hand.Rake{
		Structure:  hand.RakeStructure(r.Structure),
		Percentage: r.Percentage,
		Cap:        r.Cap,
		Amount:     r.Amount,
	}
	switch out.Structure {
	case hand.RakePercentageCapped, hand.RakePercentageOnly:
		if r.Percentage <= 0 || r.Percentage >= 100 {
			return out, fmt.Errorf("rake percentage %v out of range", r.Percentage)
		}
	case hand.RakeFixed:
		if r.Amount <= 0 {
			return out, errors.New("fixed rake needs a positive amount")
		}
	default:
		return out, fmt.Errorf("unknown rake structure %q", r.Structure)
	}
	return out, nil
}

func positionNames(positions []game.Position) []string {
	out := make([]string, len(positions))
	for i, pos := range positions {
		out[i] = string(pos)
	}
	return out
}
