package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/handrecorder/internal/game"
)

// Session owns one hand being recorded: the table config, the action log,
// the street being viewed and the engine reconstructed for it. Every
// operation that rewinds the hand goes through Reconstruct and only commits
// once the replay has succeeded, so a failure leaves the session as it was.
//
// A Session is not safe for concurrent use.
type Session struct {
	cfg        game.TableConfig
	log        *Log
	street     game.Street
	forceEnded map[game.Street]bool
	engine     *game.Engine

	opts   options
	logger *log.Logger
}

// NewSession starts a new hand. The config is validated and the forced posts
// become the first entries of the preflop log.
func NewSession(cfg game.TableConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}

	s := newSession(cfg, nil, game.Preflop, opts)
	s.engine = game.NewEngine(s.cfg, s.opts.engineOptions()...)
	l, err := NewLog(s.engine.Actions()...)
	if err != nil {
		return nil, err
	}
	s.log = l

	s.logger.Debug("Started hand", "positions", len(cfg.ActivePositions), "pot", s.engine.Pot())
	return s, nil
}

// Resume restores a session from a persisted log and rebuilds the engine for
// street, re-applying any force-end recorded for it.
func Resume(cfg game.TableConfig, l *Log, street game.Street, forceEnded []game.Street, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}

	if l == nil {
		l = &Log{}
	}
	s := newSession(cfg, l.Clone(), street, opts)
	for _, st := range forceEnded {
		s.forceEnded[st] = true
	}
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

func newSession(cfg game.TableConfig, l *Log, street game.Street, opts []Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		cfg:        cfg.Clone(),
		log:        l,
		street:     street,
		forceEnded: make(map[game.Street]bool),
		opts:       o,
		logger:     o.logger,
	}
}

// Initialize rebuilds the engine for the current street from the full log
func (s *Session) Initialize() error {
	e, err := s.rebuild(s.log, s.street)
	if err != nil {
		return err
	}
	s.engine = e
	return nil
}

// Act executes one action on the current street and appends the entry the
// engine produced to the log. A rejected action changes nothing and returns
// the engine's *game.ActionError. Acting on a revisited street drops every
// later street.
func (s *Session) Act(pos game.Position, typ game.ActionType, amount int) error {
	before := len(s.engine.Actions())
	if err := s.engine.Execute(pos, typ, amount); err != nil {
		return err
	}

	s.dropLater()
	for _, a := range s.engine.Actions()[before:] {
		if err := s.log.Append(a); err != nil {
			return err
		}
	}
	return nil
}

// Undo removes the last discretionary action of the current street and
// replays. It reports false, changing nothing, when the street has nothing
// left to undo; forced posts and earlier streets are never touched. Later
// streets are dropped along with the action.
func (s *Session) Undo() (bool, error) {
	next := s.log.Clone()
	if !next.TruncateLast(s.street) {
		return false, nil
	}
	next.TruncateAfter(s.street)

	if err := s.commit(next, s.street); err != nil {
		return false, err
	}
	s.logger.Debug("Undid action", "street", s.street, "pot", s.engine.Pot())
	return true, nil
}

// ClearStreet removes every discretionary action of the current street and
// every later street, then replays up to the start of it.
func (s *Session) ClearStreet() error {
	next := s.log.Clone()
	next.Clear(s.street)
	next.TruncateAfter(s.street)

	if err := s.commit(next, s.street); err != nil {
		return err
	}
	s.logger.Debug("Cleared street", "street", s.street, "pot", s.engine.Pot())
	return nil
}

// ForceEndStreet closes betting on the current street without replaying. The
// override is remembered so Initialize and Resume reapply it. It reports
// whether betting was still open.
func (s *Session) ForceEndStreet() bool {
	if !s.engine.ForceEnd() {
		return false
	}
	s.dropLater()
	s.forceEnded[s.street] = true
	return true
}

// NextStreet moves to the following street once betting on the current one
// has closed and at least two players are still in the hand.
func (s *Session) NextStreet() error {
	next, ok := s.street.Next()
	if !ok {
		return ErrLastStreet
	}
	if len(s.engine.InHand()) <= 1 {
		return ErrHandOver
	}
	if !s.engine.Closed() {
		return fmt.Errorf("%w: %s", ErrStreetOpen, s.street)
	}

	e, err := s.rebuild(s.log, next)
	if err != nil {
		return err
	}
	s.engine = e
	s.street = next
	s.logger.Debug("Moved to next street", "street", next, "pot", e.Pot())
	return nil
}

// GoToStreet reopens the current street or an earlier one, rebuilding it
// from the log. Later entries are kept, so NextStreet replays them again,
// until the reopened street is edited.
func (s *Session) GoToStreet(target game.Street) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStreet, target)
	}
	if target > s.street {
		return fmt.Errorf("%w: %s, use next to move on", ErrStreetAhead, target)
	}

	e, err := s.rebuild(s.log, target)
	if err != nil {
		return err
	}
	s.engine = e
	s.street = target
	s.logger.Debug("Went to street", "street", target, "pot", e.Pot())
	return nil
}

// dropLater forgets every entry and force-end recorded after the current
// street
func (s *Session) dropLater() {
	if s.log.TruncateAfter(s.street) {
		s.logger.Debug("Dropped later streets", "after", s.street)
	}
	s.clearForcedAfter(s.street)
}

func (s *Session) clearForcedAfter(street game.Street) {
	for st := range s.forceEnded {
		if st > street {
			delete(s.forceEnded, st)
		}
	}
}

// commit rebuilds street from l and, on success, adopts l as the log. A
// rewind drops any force-end on the street being rewound and every later one.
func (s *Session) commit(l *Log, street game.Street) error {
	forced := s.forceEnded[street]
	delete(s.forceEnded, street)

	e, err := s.rebuild(l, street)
	if err != nil {
		if forced {
			s.forceEnded[street] = true
		}
		return err
	}

	s.log = l
	s.engine = e
	s.clearForcedAfter(street)
	return nil
}

func (s *Session) rebuild(l *Log, street game.Street) (*game.Engine, error) {
	e, err := Reconstruct(s.cfg, l, street, s.opts.engineOptions()...)
	if err != nil {
		s.logger.Error("Reconstruction failed", "street", street, "err", err)
		return nil, err
	}
	if s.forceEnded[street] {
		e.ForceEnd()
	}
	s.logger.Debug("Reconstructed engine", "street", street, "actions", l.Len(), "pot", e.Pot())
	return e, nil
}

// State returns a snapshot of the engine for the current street
func (s *Session) State() game.GameState { return s.engine.State() }

// Street returns the street being recorded
func (s *Session) Street() game.Street { return s.street }

// Config returns a copy of the table config
func (s *Session) Config() game.TableConfig { return s.cfg.Clone() }

// Log returns a copy of the action log
func (s *Session) Log() *Log { return s.log.Clone() }

// ForceEnded returns the streets whose betting was closed by override
func (s *Session) ForceEnded() []game.Street {
	var out []game.Street
	for _, st := range game.Streets {
		if s.forceEnded[st] {
			out = append(out, st)
		}
	}
	return out
}

// InHand returns the positions that have not folded
func (s *Session) InHand() []game.Position { return s.engine.InHand() }

// Finished reports whether no further betting can be recorded: one player
// left, or river betting closed.
func (s *Session) Finished() bool {
	if len(s.engine.InHand()) <= 1 {
		return true
	}
	return s.street == game.River && s.engine.Closed()
}

// IsForceEnded reports whether street was closed by override
func (s *Session) IsForceEnded(street game.Street) bool { return s.forceEnded[street] }
