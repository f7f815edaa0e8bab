package game

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Straddle is an optional voluntary blind posted before the cards are dealt
type Straddle struct {
	Position Position
	Amount   int
}

// TableConfig is the immutable per-hand setup every engine is built from.
// Construct it once and hand identical copies to every reconstruction.
type TableConfig struct {
	SmallBlind      int
	BigBlind        int
	Straddle        *Straddle
	EffectiveStack  int
	ActivePositions []Position       // seating order
	CustomStacks    map[Position]int // optional per-position starting stacks
}

// StartingStack returns the stack a position begins the hand with. A missing
// or zero custom stack falls back to the effective stack.
func (c TableConfig) StartingStack(pos Position) int {
	if stack := c.CustomStacks[pos]; stack > 0 {
		return stack
	}
	return c.EffectiveStack
}

// IsActive reports whether pos is seated in this hand
func (c TableConfig) IsActive(pos Position) bool {
	return indexOf(c.ActivePositions, pos) >= 0
}

// TotalChips is the sum of every seated player's starting stack
func (c TableConfig) TotalChips() int {
	total := 0
	for _, pos := range c.ActivePositions {
		total += c.StartingStack(pos)
	}
	return total
}

// Clone returns a deep copy so callers cannot alias slices or maps
func (c TableConfig) Clone() TableConfig {
	out := c
	out.ActivePositions = slices.Clone(c.ActivePositions)
	if c.CustomStacks != nil {
		out.CustomStacks = maps.Clone(c.CustomStacks)
	}
	if c.Straddle != nil {
		s := *c.Straddle
		out.Straddle = &s
	}
	return out
}

// Validate checks the config is well formed. The engine itself never calls
// this; whoever constructs the config is expected to.
func (c TableConfig) Validate() error {
	var errs []error

	if c.SmallBlind <= 0 {
		errs = append(errs, errors.New("small blind must be positive"))
	}
	if c.BigBlind <= 0 {
		errs = append(errs, errors.New("big blind must be positive"))
	}
	if c.SmallBlind > c.BigBlind {
		errs = append(errs, fmt.Errorf("small blind %d exceeds big blind %d", c.SmallBlind, c.BigBlind))
	}
	if c.EffectiveStack <= 0 {
		errs = append(errs, errors.New("effective stack must be positive"))
	}
	if len(c.ActivePositions) < 2 {
		errs = append(errs, fmt.Errorf("at least 2 active positions required, got %d", len(c.ActivePositions)))
	}

	seen := make(map[Position]bool, len(c.ActivePositions))
	for _, pos := range c.ActivePositions {
		if !pos.Valid() {
			errs = append(errs, fmt.Errorf("unknown position %q", pos))
		}
		if seen[pos] {
			errs = append(errs, fmt.Errorf("position %s listed twice", pos))
		}
		seen[pos] = true
	}
	if len(c.ActivePositions) > 0 && !seen[BB] {
		errs = append(errs, errors.New("big blind position must be active"))
	}

	for pos, stack := range c.CustomStacks {
		if !seen[pos] {
			errs = append(errs, fmt.Errorf("custom stack for inactive position %s", pos))
		}
		if stack < 0 {
			errs = append(errs, fmt.Errorf("custom stack for %s is negative", pos))
		}
	}

	if s := c.Straddle; s != nil {
		if !seen[s.Position] {
			errs = append(errs, fmt.Errorf("straddle position %s is not active", s.Position))
		}
		if s.Position == SB || s.Position == BB {
			errs = append(errs, fmt.Errorf("straddle cannot be posted from %s", s.Position))
		}
		if s.Amount <= c.BigBlind {
			errs = append(errs, fmt.Errorf("straddle %d must exceed big blind %d", s.Amount, c.BigBlind))
		}
	}

	return errors.Join(errs...)
}
