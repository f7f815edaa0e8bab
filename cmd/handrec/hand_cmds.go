package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
	"github.com/lox/handrecorder/internal/replay"
	"github.com/lox/handrecorder/internal/statistics"
)

// NewCmd starts a hand from a table preset
type NewCmd struct {
	Table        string         `short:"t" help:"Table preset from the config (default_table if empty)"`
	Stack        int            `help:"Override the effective stack"`
	Stacks       map[string]int `help:"Per-position starting stacks, e.g. BTN=350"`
	Straddle     int            `help:"Straddle amount, 0 for none"`
	StraddleFrom string         `name:"straddle-from" help:"Position posting the straddle" default:"UTG"`
	Hero         string         `help:"Hero position"`
	Cards        string         `help:"Hero hole cards, e.g. AsKd"`
	VillainType  string         `name:"villain-type" help:"Read on the main villain"`
	Notes        string         `help:"General notes"`
	Session      string         `help:"Session notes"`
}

func (c *NewCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	_, err = c.run(a)
	return err
}

func (c *NewCmd) run(a *app) (*hand.Recorder, error) {
	preset, ok := a.cfg.Table(c.Table)
	if !ok {
		return nil, fmt.Errorf("no table preset %q", c.Table)
	}
	rec, err := preset.Record()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", preset.Name, err)
	}

	if c.Stack > 0 {
		rec.Table.EffectiveStack = c.Stack
	}
	for name, stack := range c.Stacks {
		pos, err := game.ParsePosition(name)
		if err != nil {
			return nil, fmt.Errorf("stacks: %w", err)
		}
		if rec.Table.CustomStacks == nil {
			rec.Table.CustomStacks = make(map[game.Position]int)
		}
		rec.Table.CustomStacks[pos] = stack
	}
	if c.Straddle > 0 {
		pos, err := game.ParsePosition(c.StraddleFrom)
		if err != nil {
			return nil, fmt.Errorf("straddle: %w", err)
		}
		rec.Table.Straddle = &game.Straddle{Position: pos, Amount: c.Straddle}
	}
	if err := rec.Table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}

	rec.VillainType = c.VillainType
	rec.GeneralNotes = c.Notes
	rec.SessionNotes = c.Session

	r, err := hand.NewRecorder(rec, a.recorderOptions()...)
	if err != nil {
		return nil, err
	}
	if c.Hero != "" || c.Cards != "" {
		if err := setSeat(r, "hero", c.Hero, c.Cards); err != nil {
			return nil, err
		}
	}
	if err := a.save(r); err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "Recording hand %s\n", r.Record().ID)
	renderState(a.out, r.Record(), r.State())
	return r, nil
}

// ActCmd records one action
type ActCmd struct {
	ID       string `arg:"" help:"Hand ID"`
	Position string `arg:"" help:"Acting position"`
	Action   string `arg:"" help:"fold, check, call, bet, raise or all-in"`
	Amount   int    `arg:"" optional:"" help:"Call or bet amount, raise-to total for raises"`
}

func (c *ActCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *ActCmd) run(a *app) error {
	pos, err := game.ParsePosition(c.Position)
	if err != nil {
		return err
	}
	typ, err := game.ParseActionType(c.Action)
	if err != nil {
		return err
	}
	return a.edit(c.ID, func(r *hand.Recorder) error {
		if err := r.Act(pos, typ, c.Amount); err != nil {
			if reasons := game.Reasons(err); reasons != nil {
				renderReasons(a.out, reasons)
			}
			return err
		}
		return nil
	})
}

// UndoCmd removes the last action recorded on the current street
type UndoCmd struct {
	ID string `arg:"" help:"Hand ID"`
}

func (c *UndoCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *UndoCmd) run(a *app) error {
	return a.edit(c.ID, func(r *hand.Recorder) error {
		undone, err := r.Undo()
		if err != nil {
			return err
		}
		if !undone {
			fmt.Fprintln(a.out, "Nothing to undo on the "+r.Street().String())
		}
		return nil
	})
}

// ClearCmd removes every voluntary action on the current street
type ClearCmd struct {
	ID string `arg:"" help:"Hand ID"`
}

func (c *ClearCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *ClearCmd) run(a *app) error {
	return a.edit(c.ID, func(r *hand.Recorder) error { return r.ClearStreet() })
}

// EndStreetCmd force-closes betting on the current street
type EndStreetCmd struct {
	ID string `arg:"" help:"Hand ID"`
}

func (c *EndStreetCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *EndStreetCmd) run(a *app) error {
	return a.edit(c.ID, func(r *hand.Recorder) error {
		if !r.ForceEndStreet() {
			fmt.Fprintln(a.out, "Betting on the "+r.Street().String()+" is already closed")
		}
		return nil
	})
}

// NextCmd moves to the next street, optionally dealing its board cards
type NextCmd struct {
	ID    string `arg:"" help:"Hand ID"`
	Cards string `arg:"" optional:"" help:"Board cards dealt on the new street"`
}

func (c *NextCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *NextCmd) run(a *app) error {
	return a.edit(c.ID, func(r *hand.Recorder) error {
		if err := r.NextStreet(); err != nil {
			switch {
			case errors.Is(err, replay.ErrStreetOpen):
				return fmt.Errorf("%w, use end-street to close it", err)
			case errors.Is(err, replay.ErrHandOver):
				return fmt.Errorf("%w, enter the summary instead", err)
			}
			return err
		}
		if c.Cards == "" {
			return nil
		}
		cards, err := deck.ParseCards(c.Cards)
		if err != nil {
			return err
		}
		return r.SetBoard(r.Street(), cards)
	})
}

// StreetCmd goes back to an earlier street to correct it
type StreetCmd struct {
	ID     string `arg:"" help:"Hand ID"`
	Street string `arg:"" enum:"preflop,flop,turn,river" help:"Street to reopen"`
}

func (c *StreetCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *StreetCmd) run(a *app) error {
	street, err := game.ParseStreet(c.Street)
	if err != nil {
		return err
	}
	return a.edit(c.ID, func(r *hand.Recorder) error {
		if err := r.GoToStreet(street); err != nil {
			return err
		}
		later := slices.ContainsFunc(r.Record().Actions, func(entry game.Action) bool {
			return entry.Street > street
		})
		if later {
			fmt.Fprintln(a.out, infoStyle.Render("Later streets are kept until the "+street.String()+" is changed"))
		}
		return nil
	})
}

// BoardCmd sets the cards of one street
type BoardCmd struct {
	ID     string `arg:"" help:"Hand ID"`
	Street string `arg:"" enum:"flop,turn,river" help:"flop, turn or river"`
	Cards  string `arg:"" help:"Cards, e.g. Kd7h2h"`
}

func (c *BoardCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *BoardCmd) run(a *app) error {
	street, err := game.ParseStreet(c.Street)
	if err != nil {
		return err
	}
	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	return a.edit(c.ID, func(r *hand.Recorder) error { return r.SetBoard(street, cards) })
}

// SeatCmd sets hero or villain details
type SeatCmd struct {
	ID       string `arg:"" help:"Hand ID"`
	Who      string `arg:"" enum:"hero,villain" help:"hero or villain"`
	Position string `arg:"" help:"Position, empty to clear"`
	Cards    string `arg:"" optional:"" help:"Hole cards if known"`
}

func (c *SeatCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *SeatCmd) run(a *app) error {
	return a.edit(c.ID, func(r *hand.Recorder) error {
		return setSeat(r, c.Who, c.Position, c.Cards)
	})
}

func setSeat(r *hand.Recorder, who, position, cards string) error {
	var pos game.Position
	if position != "" {
		p, err := game.ParsePosition(position)
		if err != nil {
			return err
		}
		pos = p
	}
	hole, err := deck.ParseCards(cards)
	if err != nil {
		return err
	}
	if who == "villain" {
		return r.SetVillain(pos, hole)
	}
	return r.SetHero(pos, hole)
}

// TagCmd replaces the tags of a hand
type TagCmd struct {
	ID   string   `arg:"" help:"Hand ID"`
	Tags []string `arg:"" optional:"" help:"Tags, e.g. bluff value-bet"`
}

func (c *TagCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *TagCmd) run(a *app) error {
	r, err := a.load(c.ID)
	if err != nil {
		return err
	}
	r.SetTags(c.Tags)
	if err := a.save(r); err != nil {
		return err
	}
	tags := r.Record().Tags
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags")
		return nil
	}
	fmt.Fprintln(a.out, "Tags: "+strings.Join(tags, ", "))
	return nil
}

// SummaryCmd enters the result of a hand and prints the analysis
type SummaryCmd struct {
	ID      string `arg:"" help:"Hand ID"`
	Result  string `help:"won, lost or chopped"`
	Amount  string `help:"Net amount won by hero, inferred from the pot if empty"`
	Notes   string `help:"Summary notes"`
	Lessons string `help:"Lessons learned"`
}

func (c *SummaryCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *SummaryCmd) run(a *app) error {
	r, err := a.load(c.ID)
	if err != nil {
		return err
	}

	if c.Result != "" {
		result, err := hand.ParseResult(c.Result)
		if err != nil {
			return err
		}
		amount, err := c.amount(r.Record(), result)
		if err != nil {
			return err
		}
		r.Complete(hand.Summary{
			Result:         result,
			AmountWon:      amount,
			SummaryNotes:   c.Notes,
			LessonsLearned: c.Lessons,
		})
		if err := a.save(r); err != nil {
			return err
		}
	}

	renderSummary(a.out, r.Record())
	return nil
}

func (c *SummaryCmd) amount(rec *hand.Record, result hand.Result) (int, error) {
	if c.Amount != "" {
		amount, err := strconv.Atoi(c.Amount)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", c.Amount)
		}
		return amount, nil
	}
	return inferAmount(rec, result), nil
}

// ShowCmd prints everything recorded for a hand
type ShowCmd struct {
	ID string `arg:"" help:"Hand ID"`
}

func (c *ShowCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *ShowCmd) run(a *app) error {
	r, err := a.load(c.ID)
	if err != nil {
		return err
	}
	rec := r.Record()
	renderHand(a.out, rec)
	renderState(a.out, rec, r.State())
	return nil
}

// ListCmd prints a line per stored hand
type ListCmd struct{}

func (c *ListCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *ListCmd) run(a *app) error {
	hands, err := a.store.List()
	if err != nil {
		return err
	}
	renderList(a.out, hands)
	return nil
}

// DeleteCmd removes a stored hand
type DeleteCmd struct {
	ID string `arg:"" help:"Hand ID"`
}

func (c *DeleteCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *DeleteCmd) run(a *app) error {
	if err := a.store.Delete(c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted hand %s\n", c.ID)
	return nil
}

// StatsCmd aggregates results over every completed hand in the store
type StatsCmd struct{}

func (c *StatsCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	return c.run(a)
}

func (c *StatsCmd) run(a *app) error {
	hands, err := a.store.List()
	if err != nil {
		return err
	}
	stats := statistics.New()
	for _, h := range hands {
		if !h.Complete {
			continue
		}
		rec, err := a.store.Load(h.ID)
		if err != nil {
			return err
		}
		stats.Add(rec)
	}
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	renderStats(a.out, stats)
	return nil
}
