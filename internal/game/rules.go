package game

import "fmt"

// LegalAction is one entry of the advisory action menu offered to the UI.
// Execute re-validates independently, so the menu is never trusted.
type LegalAction struct {
	Type   ActionType
	Amount int // chips owed for a call, or the whole stack for all-in

	// Bet: size bounds. Raise: increment bounds over the current bet.
	Min int
	Max int

	// Raise only: the same bounds expressed as raise-to totals.
	MinRaiseTo int
	MaxRaiseTo int
}

// Validate checks whether pos may take the given action now. It never
// modifies the engine. The returned error, if any, is an *ActionError.
func (e *Engine) Validate(pos Position, typ ActionType, amount int) error {
	p, ok := e.players[pos]
	if !ok {
		return reject(pos, typ, fmt.Sprintf("%s is not active in current table setup", pos))
	}
	if e.closed {
		return reject(pos, typ, "Action is closed for this street")
	}
	if pos != e.actionOn {
		return reject(pos, typ, fmt.Sprintf("Not %s's turn to act. Current action on %s", pos, e.actionOn))
	}
	if p.Folded {
		return reject(pos, typ, fmt.Sprintf("%s has already folded", pos))
	}
	if p.AllIn {
		return reject(pos, typ, fmt.Sprintf("%s is already all-in", pos))
	}

	var reasons []string
	switch typ {
	case Fold:
	case Check:
		reasons = e.checkRules(p)
	case Call:
		reasons = e.callRules(p, amount)
	case Bet:
		reasons = e.betRules(p, amount)
	case Raise:
		reasons = e.raiseRules(p, amount)
	case AllIn:
		if p.Stack == 0 {
			reasons = []string{"Player has no chips to go all-in with"}
		}
	default:
		reasons = []string{"Invalid action type"}
	}

	if len(reasons) > 0 {
		return reject(pos, typ, reasons...)
	}
	return nil
}

func (e *Engine) checkRules(p *Player) []string {
	if owed := p.ToCall(e.currentBet); owed > 0 {
		return []string{fmt.Sprintf("Cannot check. Must call $%d or fold", owed)}
	}
	return nil
}

func (e *Engine) callRules(p *Player, amount int) []string {
	owed := p.ToCall(e.currentBet)
	if owed == 0 {
		return []string{"Cannot call when there is no bet. Use check instead"}
	}
	if exact := min(owed, p.Stack); amount != exact {
		return []string{fmt.Sprintf("Must call exactly $%d", exact)}
	}
	return nil
}

func (e *Engine) betRules(p *Player, amount int) []string {
	if e.currentBet > 0 {
		return []string{"Cannot bet when there is already a bet. Use raise instead"}
	}

	var reasons []string
	if amount > p.Stack {
		reasons = append(reasons, fmt.Sprintf("Insufficient stack. Has $%d, trying to bet $%d", p.Stack, amount))
	}
	if amount <= 0 {
		reasons = append(reasons, "Bet amount must be greater than 0")
	}
	return reasons
}

// raiseRules treats amount as a raise-to total. A raise below the minimum is
// allowed only when it puts the raiser's whole stack in.
func (e *Engine) raiseRules(p *Player, raiseTo int) []string {
	if e.currentBet == 0 {
		return []string{"Cannot raise when there is no bet. Use bet instead"}
	}

	var reasons []string
	required := raiseTo - p.Contributed
	minRaiseTo := e.MinRaiseTo()

	if raiseTo <= e.currentBet {
		reasons = append(reasons, fmt.Sprintf("Raise must be higher than current bet of $%d", e.currentBet))
	}
	if raiseTo < minRaiseTo && required != p.Stack {
		reasons = append(reasons, fmt.Sprintf("Minimum raise to $%d. Current raise to $%d is too small", minRaiseTo, raiseTo))
	}
	if required > p.Stack {
		reasons = append(reasons, fmt.Sprintf("Insufficient stack. Has $%d, needs $%d", p.Stack, required))
	}
	return reasons
}

// AvailableActions returns the legal-action menu for pos. Only the position
// the action is on gets a menu; everyone else gets nil.
func (e *Engine) AvailableActions(pos Position) []LegalAction {
	if e.closed || pos == "" || pos != e.actionOn {
		return nil
	}
	p := e.players[pos]
	owed := p.ToCall(e.currentBet)

	actions := []LegalAction{{Type: Fold}}

	if owed == 0 {
		actions = append(actions, LegalAction{Type: Check})
	} else if owed <= p.Stack {
		actions = append(actions, LegalAction{Type: Call, Amount: owed})
	}

	if e.currentBet == 0 && p.Stack > 0 {
		actions = append(actions, LegalAction{Type: Bet, Min: 1, Max: p.Stack})
	}

	if e.currentBet > 0 && p.Stack > owed {
		minInc := e.lastRaise
		maxInc := p.Stack - owed
		if maxInc >= minInc {
			actions = append(actions, LegalAction{
				Type:       Raise,
				Min:        minInc,
				Max:        maxInc,
				MinRaiseTo: e.currentBet + minInc,
				MaxRaiseTo: e.currentBet + maxInc,
			})
		}
	}

	if p.Stack > 0 {
		actions = append(actions, LegalAction{Type: AllIn, Amount: p.Stack})
	}

	return actions
}

// GameState is a read-only snapshot of the engine, recomputed on demand
type GameState struct {
	Street          Street
	Players         []Player // seating order
	Actions         []Action
	CurrentBet      int
	LastRaiseAmount int
	Pot             int
	ActionOn        Position // empty when closed
	Closed          bool
	Available       []LegalAction
}

// State returns a snapshot of the engine
func (e *Engine) State() GameState {
	return GameState{
		Street:          e.street,
		Players:         e.Players(),
		Actions:         e.Actions(),
		CurrentBet:      e.currentBet,
		LastRaiseAmount: e.lastRaise,
		Pot:             e.pot,
		ActionOn:        e.actionOn,
		Closed:          e.closed,
		Available:       e.AvailableActions(e.actionOn),
	}
}

// Player looks up a position in the snapshot
func (s GameState) Player(pos Position) (Player, bool) {
	for _, p := range s.Players {
		if p.Position == pos {
			return p, true
		}
	}
	return Player{}, false
}

// Can reports whether typ appears in the snapshot's action menu
func (s GameState) Can(typ ActionType) bool {
	for _, a := range s.Available {
		if a.Type == typ {
			return true
		}
	}
	return false
}
