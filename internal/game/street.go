package game

import "fmt"

// TransitionTo resets the engine for the next street. It must be applied
// exactly once per boundary and only to the street directly after the
// current one.
//
// Live players start the street with nothing contributed and must act
// again. Folded and all-in players keep their last contribution. The current
// bet clears and the minimum raise resets to the big blind. Action starts
// from the first live position in canonical order beginning at SB.
func (e *Engine) TransitionTo(target Street) error {
	next, ok := e.street.Next()
	if !ok || target != next {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, e.street, target)
	}

	e.closed = false
	e.currentBet = 0
	e.lastRaise = e.cfg.BigBlind

	folded := make(map[Position]bool)
	allIn := make(map[Position]bool)
	for _, pos := range e.seats {
		p := e.players[pos]
		if p.IsLive() {
			p.Contributed = 0
			p.HasActed = false
		}
		folded[pos] = p.Folded
		allIn[pos] = p.AllIn
	}

	e.street = target
	e.actionOn = FirstPostflopPosition(e.seats, folded, allIn)
	if e.actionOn == "" {
		e.closed = true
	}

	e.logger.Debug("Street transition", "street", target, "pot", e.pot, "actionOn", e.actionOn)
	return nil
}

// FirstPostflopPosition returns the first position in canonical order
// (SB, BB, UTG ... BTN) that is seated and neither folded nor all-in, or ""
// when nobody can act. Seating order does not matter postflop.
func FirstPostflopPosition(active []Position, folded, allIn map[Position]bool) Position {
	for _, pos := range CanonicalOrder {
		if indexOf(active, pos) < 0 {
			continue
		}
		if !folded[pos] && !allIn[pos] {
			return pos
		}
	}
	return ""
}
