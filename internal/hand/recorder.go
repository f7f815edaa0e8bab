package hand

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/handid"
	"github.com/lox/handrecorder/internal/replay"
)

// Recorder binds a Record to the replay session recording its betting. After
// every operation the record's actions, street and pot match the session.
type Recorder struct {
	rec     *Record
	session *replay.Session

	clock  quartz.Clock
	logger *log.Logger
	ids    *handid.Generator
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock sets the clock used for record and action timestamps
func WithClock(clock quartz.Clock) Option {
	return func(r *Recorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger sets the logger passed down to the session
func WithLogger(logger *log.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIDGenerator sets the generator used for new hand IDs
func WithIDGenerator(ids *handid.Generator) Option {
	return func(r *Recorder) { r.ids = ids }
}

func newRecorder(rec *Record, opts []Option) *Recorder {
	r := &Recorder{rec: rec, clock: quartz.NewReal(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	if r.ids == nil {
		r.ids = handid.NewGenerator(handid.WithClock(r.clock))
	}
	return r
}

func (r *Recorder) sessionOptions() []replay.Option {
	return []replay.Option{replay.WithClock(r.clock), replay.WithLogger(r.logger)}
}

// NewRecorder starts recording a new hand described by rec. Any actions in
// rec are ignored; the blinds are posted from rec.Table.
func NewRecorder(rec Record, opts ...Option) (*Recorder, error) {
	r := newRecorder(rec.Clone(), opts)
	if err := r.rec.ValidateCards(); err != nil {
		return nil, err
	}

	session, err := replay.NewSession(r.rec.Table, r.sessionOptions()...)
	if err != nil {
		return nil, err
	}
	r.session = session

	if r.rec.ID == "" {
		id, err := r.ids.New()
		if err != nil {
			return nil, fmt.Errorf("generate hand id: %w", err)
		}
		r.rec.ID = id
	}
	if r.rec.Created.IsZero() {
		r.rec.Created = r.clock.Now()
	}

	r.sync()
	r.logger.Debug("Recording hand", "id", r.rec.ID, "stakes", r.rec.StakeLevel)
	return r, nil
}

// Open resumes recording a stored hand by replaying its action log
func Open(rec *Record, opts ...Option) (*Recorder, error) {
	r := newRecorder(rec.Clone(), opts)

	l, err := replay.NewLog(r.rec.Actions...)
	if err != nil {
		return nil, fmt.Errorf("open hand %s: %w", rec.ID, err)
	}
	session, err := replay.Resume(r.rec.Table, l, r.rec.CurrentStreet, r.rec.ForceEnded, r.sessionOptions()...)
	if err != nil {
		return nil, fmt.Errorf("open hand %s: %w", rec.ID, err)
	}
	r.session = session
	r.sync()
	return r, nil
}

func (r *Recorder) sync() {
	r.rec.Actions = r.session.Log().All()
	r.rec.CurrentStreet = r.session.Street()
	r.rec.ForceEnded = r.session.ForceEnded()
	r.rec.PotSize = r.session.State().Pot
}

// Act records one betting action on the current street
func (r *Recorder) Act(pos game.Position, typ game.ActionType, amount int) error {
	if err := r.session.Act(pos, typ, amount); err != nil {
		return err
	}
	r.sync()
	return nil
}

// Undo removes the last action of the current street
func (r *Recorder) Undo() (bool, error) {
	undone, err := r.session.Undo()
	if err != nil {
		return false, err
	}
	r.sync()
	return undone, nil
}

// ClearStreet removes every action of the current street
func (r *Recorder) ClearStreet() error {
	if err := r.session.ClearStreet(); err != nil {
		return err
	}
	r.sync()
	return nil
}

// ForceEndStreet closes betting on the current street by override
func (r *Recorder) ForceEndStreet() bool {
	changed := r.session.ForceEndStreet()
	r.sync()
	return changed
}

// NextStreet moves recording on to the following street
func (r *Recorder) NextStreet() error {
	if err := r.session.NextStreet(); err != nil {
		return err
	}
	r.sync()
	return nil
}

// GoToStreet reopens an earlier street for editing
func (r *Recorder) GoToStreet(street game.Street) error {
	if err := r.session.GoToStreet(street); err != nil {
		return err
	}
	r.sync()
	return nil
}

// SetBoard records the cards dealt on a street. The record is left unchanged
// if the cards are the wrong number or clash with cards already known.
func (r *Recorder) SetBoard(street game.Street, cards []deck.Card) error {
	next := r.rec.Clone()
	switch street {
	case game.Flop:
		next.Board.Flop = slices.Clone(cards)
	case game.Turn:
		next.Board.Turn = slices.Clone(cards)
	case game.River:
		next.Board.River = slices.Clone(cards)
	default:
		return fmt.Errorf("no board cards on %s", street)
	}
	return r.adopt(next)
}

// SetHero records hero's seat and hole cards
func (r *Recorder) SetHero(pos game.Position, cards []deck.Card) error {
	if pos != "" && !r.rec.Table.IsActive(pos) {
		return fmt.Errorf("hero position %s is not seated", pos)
	}
	next := r.rec.Clone()
	next.HeroPosition = pos
	next.HeroCards = slices.Clone(cards)
	return r.adopt(next)
}

// SetVillain records the main opponent's seat and, if shown, hole cards
func (r *Recorder) SetVillain(pos game.Position, cards []deck.Card) error {
	if pos != "" && !r.rec.Table.IsActive(pos) {
		return fmt.Errorf("villain position %s is not seated", pos)
	}
	if pos != "" && pos == r.rec.HeroPosition {
		return fmt.Errorf("villain cannot sit in hero's seat %s", pos)
	}
	next := r.rec.Clone()
	next.VillainPosition = pos
	next.VillainCards = slices.Clone(cards)
	return r.adopt(next)
}

func (r *Recorder) adopt(next *Record) error {
	if err := next.ValidateCards(); err != nil {
		return err
	}
	r.rec = next
	return nil
}

// SetTags replaces the tag set, trimming blanks and duplicates. Tags outside
// HandTags are kept.
func (r *Recorder) SetTags(tags []string) {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	r.rec.Tags = out
}

// Summary is what the operator enters when finishing a hand
type Summary struct {
	Result         Result
	AmountWon      int
	SummaryNotes   string
	LessonsLearned string
}

// Complete stores the summary and stamps the completion time. It can be
// called again to revise a summary.
func (r *Recorder) Complete(s Summary) {
	r.rec.Result = s.Result
	r.rec.AmountWon = s.AmountWon
	r.rec.SummaryNotes = s.SummaryNotes
	r.rec.LessonsLearned = s.LessonsLearned
	r.rec.Completed = r.clock.Now()
	r.logger.Debug("Completed hand", "id", r.rec.ID, "result", s.Result, "amount", s.AmountWon)
}

// Record returns a copy of the record
func (r *Recorder) Record() *Record { return r.rec.Clone() }

// State returns the betting state of the current street
func (r *Recorder) State() game.GameState { return r.session.State() }

// Street returns the street being recorded
func (r *Recorder) Street() game.Street { return r.session.Street() }

// Finished reports whether no more betting can be recorded
func (r *Recorder) Finished() bool { return r.session.Finished() }
