package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Engine enforces one street of no-limit betting for a fixed set of positions.
// It is rebuilt from the table config and replayed for every undo, clear and
// street change; it is never carried across those events. An Engine is not
// safe for concurrent use.
type Engine struct {
	cfg     TableConfig
	seats   []Position
	players map[Position]*Player
	actions []Action

	street     Street
	currentBet int
	lastRaise  int
	pot        int
	actionOn   Position // empty when betting is closed
	closed     bool

	clock  quartz.Clock
	logger *log.Logger
}

// NewEngine creates an engine for a new hand and posts the blinds and any
// straddle. Posting never counts as acting.
func NewEngine(cfg TableConfig, opts ...EngineOption) *Engine {
	ec := defaultEngineConfig()
	for _, opt := range opts {
		opt(&ec)
	}

	cfg = cfg.Clone()
	e := &Engine{
		cfg:     cfg,
		seats:   cfg.ActivePositions,
		players: make(map[Position]*Player, len(cfg.ActivePositions)),
		street:  Preflop,
		clock:   ec.clock,
		logger:  ec.logger,
	}
	for _, pos := range e.seats {
		e.players[pos] = &Player{
			Position: pos,
			Stack:    cfg.StartingStack(pos),
		}
	}

	e.startPreflop()
	return e
}

func (e *Engine) startPreflop() {
	e.post(SB, e.cfg.SmallBlind, PostBlind)
	e.post(BB, e.cfg.BigBlind, PostBlind)

	straddled := false
	if s := e.cfg.Straddle; s != nil && e.cfg.IsActive(s.Position) {
		e.post(s.Position, s.Amount, PostStraddle)
		straddled = true
	}

	e.currentBet = e.cfg.BigBlind
	anchor := BB
	if straddled {
		e.currentBet = e.cfg.Straddle.Amount
		anchor = e.cfg.Straddle.Position
	}
	e.lastRaise = e.currentBet

	e.actionOn = e.nextLive(anchor)
	if e.actionOn == "" {
		e.closed = true
	}

	e.logger.Debug("Posted forced bets", "pot", e.pot, "currentBet", e.currentBet, "actionOn", e.actionOn)
}

func (e *Engine) post(pos Position, amount int, typ ActionType) {
	p, ok := e.players[pos]
	if !ok {
		return
	}

	posted := min(amount, p.Stack)
	p.put(posted)
	p.HasActed = false
	e.pot += posted
	e.record(p, Action{Type: typ, Amount: posted})
}

// Execute validates and applies an action for pos. For a raise, amount is the
// raise-to total. For a call it must equal the exact chips owed (capped at the
// stack). Fold, check and all-in ignore amount.
func (e *Engine) Execute(pos Position, typ ActionType, amount int) error {
	if err := e.Validate(pos, typ, amount); err != nil {
		e.logger.Debug("Rejected action", "position", pos, "action", typ, "amount", amount, "err", err)
		return err
	}

	p := e.players[pos]
	switch typ {
	case Fold:
		p.Folded = true
		p.HasActed = true
		e.record(p, Action{Type: Fold})
	case Check:
		p.HasActed = true
		e.record(p, Action{Type: Check})
	case Call:
		e.call(p)
	case Bet:
		e.bet(p, amount)
	case Raise:
		e.raiseTo(p, amount)
	case AllIn:
		e.allIn(p)
	}

	e.advance()
	return nil
}

// Apply executes a logged action, feeding it the amount its type treats as authoritative.
func (e *Engine) Apply(a Action) error {
	return e.Execute(a.Position, a.Type, a.Size())
}

func (e *Engine) call(p *Player) {
	amount := min(p.ToCall(e.currentBet), p.Stack)
	p.put(amount)
	p.HasActed = true
	e.pot += amount
	e.record(p, Action{Type: Call, Amount: amount})
}

func (e *Engine) bet(p *Player, amount int) {
	p.put(amount)
	p.HasActed = true
	e.pot += amount
	e.currentBet = p.Contributed
	e.lastRaise = amount
	e.record(p, Action{Type: Bet, Amount: amount})
	e.reopen(p.Position)
}

func (e *Engine) raiseTo(p *Player, raiseTo int) {
	required := raiseTo - p.Contributed
	previous := e.currentBet

	p.put(required)
	p.HasActed = true
	e.pot += required
	e.currentBet = raiseTo
	e.lastRaise = raiseTo - previous
	e.record(p, Action{Type: Raise, Amount: required, RaiseTo: raiseTo})
	e.reopen(p.Position)
}

// allIn resolves an all-in into the bet, raise or call it amounts to. It is
// legal by construction once the player has chips, including a raise smaller
// than the minimum.
func (e *Engine) allIn(p *Player) {
	if p.Stack > p.ToCall(e.currentBet) {
		if e.currentBet == 0 {
			e.bet(p, p.Stack)
		} else {
			e.raiseTo(p, p.Contributed+p.Stack)
		}
		return
	}
	e.call(p)
}

// reopen clears hasActed for every live player except the aggressor
func (e *Engine) reopen(aggressor Position) {
	for _, pos := range e.seats {
		p := e.players[pos]
		if pos != aggressor && p.IsLive() {
			p.HasActed = false
		}
	}
	e.logger.Debug("Reopened action", "aggressor", aggressor, "currentBet", e.currentBet)
}

func (e *Engine) record(p *Player, a Action) {
	a.Position = p.Position
	a.Street = e.street
	a.Timestamp = e.clock.Now()
	a.AllIn = p.AllIn
	e.actions = append(e.actions, a)

	last := a
	p.LastAction = &last
}

func (e *Engine) advance() {
	from := e.actionOn
	next := e.nextLive(from)
	complete := e.IsActionComplete()

	if next == "" || complete {
		e.closed = true
		e.actionOn = ""
		e.logger.Debug("Closing action", "street", e.street, "pot", e.pot, "complete", complete)
		return
	}

	e.actionOn = next
	e.logger.Debug("Advanced action", "from", from, "to", next, "currentBet", e.currentBet)
}

// nextLive returns the first position after from in seating order, wrapping
// and finally considering from itself, that is neither folded nor all-in.
func (e *Engine) nextLive(from Position) Position {
	n := len(e.seats)
	start := indexOf(e.seats, from)
	for i := 1; i <= n; i++ {
		pos := e.seats[(start+i+n)%n]
		if e.players[pos].IsLive() {
			return pos
		}
	}
	return ""
}

// IsActionComplete reports whether the closing condition for the current
// street holds. A lone live player still has to act on a bet they have not
// matched even though nobody else can respond.
//
// With no live players the street is trivially closed.
func (e *Engine) IsActionComplete() bool {
	for _, pos := range e.seats {
		p := e.players[pos]
		if p.IsLive() && (!p.HasActed || p.Contributed != e.currentBet) {
			return false
		}
	}
	return true
}

// ForceEnd closes betting on the current street even though the closing
// condition has not been met. It reports whether anything changed.
func (e *Engine) ForceEnd() bool {
	if e.closed {
		return false
	}
	e.closed = true
	e.actionOn = ""
	e.logger.Debug("Forced end of street", "street", e.street, "pot", e.pot)
	return true
}

// Config returns a copy of the table config the engine was built from
func (e *Engine) Config() TableConfig { return e.cfg.Clone() }

// Street returns the street currently being bet
func (e *Engine) Street() Street { return e.street }

// Pot returns the total chips committed this hand
func (e *Engine) Pot() int { return e.pot }

// CurrentBet returns the contribution level live players must match
func (e *Engine) CurrentBet() int { return e.currentBet }

// LastRaiseAmount returns the size of the last bet or raise increment
func (e *Engine) LastRaiseAmount() int { return e.lastRaise }

// MinRaiseTo returns the smallest legal raise-to total, ignoring the all-in exception
func (e *Engine) MinRaiseTo() int { return e.currentBet + e.lastRaise }

// ActionOn returns the position entitled to act, or "" when betting is closed
func (e *Engine) ActionOn() Position { return e.actionOn }

// Closed reports whether betting on the current street is over
func (e *Engine) Closed() bool { return e.closed }

// Player returns a copy of the player seated at pos
func (e *Engine) Player(pos Position) (Player, bool) {
	p, ok := e.players[pos]
	if !ok {
		return Player{}, false
	}
	return p.snapshot(), true
}

// Players returns copies of every player in seating order
func (e *Engine) Players() []Player {
	out := make([]Player, 0, len(e.seats))
	for _, pos := range e.seats {
		out = append(out, e.players[pos].snapshot())
	}
	return out
}

// Actions returns a copy of every action the engine has logged, forced posts included
func (e *Engine) Actions() []Action {
	return slices.Clone(e.actions)
}

// StreetActions returns the logged actions for one street
func (e *Engine) StreetActions(s Street) []Action {
	var out []Action
	for _, a := range e.actions {
		if a.Street == s {
			out = append(out, a)
		}
	}
	return out
}

// InHand returns the positions that have not folded, in seating order
func (e *Engine) InHand() []Position {
	var out []Position
	for _, pos := range e.seats {
		if !e.players[pos].Folded {
			out = append(out, pos)
		}
	}
	return out
}

func (e *Engine) String() string {
	return fmt.Sprintf("%s pot=%d bet=%d on=%q closed=%v", e.street, e.pot, e.currentBet, e.actionOn, e.closed)
}
