package store

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
)

// formatVersion is bumped whenever a stored field changes meaning
const formatVersion = 1

// handFile is the on-disk TOML layout of one hand record
type handFile struct {
	Version int    `toml:"version"`
	ID      string `toml:"id"`

	StakeLevel   string    `toml:"stake_level,omitempty"`
	Casino       string    `toml:"casino,omitempty"`
	Location     string    `toml:"location,omitempty"`
	GameType     string    `toml:"game_type,omitempty"`
	VillainType  string    `toml:"villain_type,omitempty"`
	GeneralNotes string    `toml:"general_notes,omitempty"`
	SessionNotes string    `toml:"session_notes,omitempty"`
	Rake         *rakeFile `toml:"rake,omitempty"`

	CurrentStreet game.Street   `toml:"current_street"`
	ForceEnded    []game.Street `toml:"force_ended,omitempty"`
	PotSize       int           `toml:"pot_size"`

	Tags           []string   `toml:"tags,omitempty"`
	Result         string     `toml:"result,omitempty"`
	AmountWon      int        `toml:"amount_won"`
	SummaryNotes   string     `toml:"summary_notes,omitempty"`
	LessonsLearned string     `toml:"lessons_learned,omitempty"`
	Created        time.Time  `toml:"created"`
	Completed      *time.Time `toml:"completed,omitempty"`

	Table   tableFile    `toml:"table"`
	Hero    seatFile     `toml:"hero"`
	Villain seatFile     `toml:"villain"`
	Board   boardFile    `toml:"board"`
	Actions []actionFile `toml:"actions"`
}

type rakeFile struct {
	Structure  string  `toml:"structure"`
	Percentage float64 `toml:"percentage,omitempty"`
	Cap        int     `toml:"cap,omitempty"`
	Amount     int     `toml:"amount,omitempty"`
}

type tableFile struct {
	SmallBlind     int            `toml:"small_blind"`
	BigBlind       int            `toml:"big_blind"`
	EffectiveStack int            `toml:"effective_stack"`
	Positions      []string       `toml:"positions"`
	Stacks         map[string]int `toml:"stacks,omitempty"`
	Straddle       *straddleFile  `toml:"straddle,omitempty"`
}

type straddleFile struct {
	Position string `toml:"position"`
	Amount   int    `toml:"amount"`
}

type seatFile struct {
	Position string   `toml:"position,omitempty"`
	Cards    []string `toml:"cards,omitempty"`
}

type boardFile struct {
	Flop  []string `toml:"flop,omitempty"`
	Turn  []string `toml:"turn,omitempty"`
	River []string `toml:"river,omitempty"`
}

type actionFile struct {
	Street   game.Street     `toml:"street"`
	Position string          `toml:"position"`
	Type     game.ActionType `toml:"type"`
	Amount   int             `toml:"amount,omitempty"`
	RaiseTo  int             `toml:"raise_to,omitempty"`
	AllIn    bool            `toml:"all_in,omitempty"`
	Time     time.Time       `toml:"time"`
}

// Encode writes rec as TOML
func Encode(w io.Writer, rec *hand.Record) error {
	if rec == nil {
		return fmt.Errorf("store: record is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(toFile(rec))
}

// Decode reads a record written by Encode
func Decode(r io.Reader) (*hand.Record, error) {
	var f handFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode hand: %w", err)
	}
	if f.Version > formatVersion {
		return nil, fmt.Errorf("hand %s has format version %d, newest supported is %d", f.ID, f.Version, formatVersion)
	}
	return fromFile(&f)
}

func toFile(rec *hand.Record) *handFile {
	f := &handFile{
		Version:        formatVersion,
		ID:             rec.ID,
		StakeLevel:     rec.StakeLevel,
		Casino:         rec.Casino,
		Location:       rec.Location,
		GameType:       string(rec.GameType),
		VillainType:    rec.VillainType,
		GeneralNotes:   rec.GeneralNotes,
		SessionNotes:   rec.SessionNotes,
		CurrentStreet:  rec.CurrentStreet,
		ForceEnded:     rec.ForceEnded,
		PotSize:        rec.PotSize,
		Tags:           rec.Tags,
		Result:         string(rec.Result),
		AmountWon:      rec.AmountWon,
		SummaryNotes:   rec.SummaryNotes,
		LessonsLearned: rec.LessonsLearned,
		Created:        rec.Created,
		Hero:           seatFile{Position: string(rec.HeroPosition), Cards: deck.Strings(rec.HeroCards)},
		Villain:        seatFile{Position: string(rec.VillainPosition), Cards: deck.Strings(rec.VillainCards)},
		Board: boardFile{
			Flop:  deck.Strings(rec.Board.Flop),
			Turn:  deck.Strings(rec.Board.Turn),
			River: deck.Strings(rec.Board.River),
		},
	}
	if rec.Rake.Structure != "" {
		f.Rake = &rakeFile{
			Structure:  string(rec.Rake.Structure),
			Percentage: rec.Rake.Percentage,
			Cap:        rec.Rake.Cap,
			Amount:     rec.Rake.Amount,
		}
	}
	if rec.IsComplete() {
		completed := rec.Completed
		f.Completed = &completed
	}

	t := rec.Table
	f.Table = tableFile{
		SmallBlind:     t.SmallBlind,
		BigBlind:       t.BigBlind,
		EffectiveStack: t.EffectiveStack,
	}
	for _, pos := range t.ActivePositions {
		f.Table.Positions = append(f.Table.Positions, string(pos))
	}
	if len(t.CustomStacks) > 0 {
		f.Table.Stacks = make(map[string]int, len(t.CustomStacks))
		for pos, stack := range t.CustomStacks {
			f.Table.Stacks[string(pos)] = stack
		}
	}
	if t.Straddle != nil {
		f.Table.Straddle = &straddleFile{Position: string(t.Straddle.Position), Amount: t.Straddle.Amount}
	}

	for _, a := range rec.Actions {
		f.Actions = append(f.Actions, actionFile{
			Street:   a.Street,
			Position: string(a.Position),
			Type:     a.Type,
			Amount:   a.Amount,
			RaiseTo:  a.RaiseTo,
			AllIn:    a.AllIn,
			Time:     a.Timestamp,
		})
	}
	return f
}

func fromFile(f *handFile) (*hand.Record, error) {
	rec := &hand.Record{
		ID:             f.ID,
		StakeLevel:     f.StakeLevel,
		Casino:         f.Casino,
		Location:       f.Location,
		GameType:       hand.GameType(f.GameType),
		VillainType:    f.VillainType,
		GeneralNotes:   f.GeneralNotes,
		SessionNotes:   f.SessionNotes,
		CurrentStreet:  f.CurrentStreet,
		ForceEnded:     f.ForceEnded,
		PotSize:        f.PotSize,
		Tags:           f.Tags,
		AmountWon:      f.AmountWon,
		SummaryNotes:   f.SummaryNotes,
		LessonsLearned: f.LessonsLearned,
		Created:        f.Created,
	}
	if f.Result != "" {
		result, err := hand.ParseResult(f.Result)
		if err != nil {
			return nil, err
		}
		rec.Result = result
	}
	if f.Rake != nil {
		rec.Rake = hand.Rake{
			Structure:  hand.RakeStructure(f.Rake.Structure),
			Percentage: f.Rake.Percentage,
			Cap:        f.Rake.Cap,
			Amount:     f.Rake.Amount,
		}
	}
	if f.Completed != nil {
		rec.Completed = *f.Completed
	}

	table, err := f.Table.config()
	if err != nil {
		return nil, err
	}
	rec.Table = table

	if rec.HeroPosition, rec.HeroCards, err = f.Hero.parse("hero"); err != nil {
		return nil, err
	}
	if rec.VillainPosition, rec.VillainCards, err = f.Villain.parse("villain"); err != nil {
		return nil, err
	}
	if rec.Board, err = f.Board.parse(); err != nil {
		return nil, err
	}

	for i, a := range f.Actions {
		pos, err := game.ParsePosition(a.Position)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		rec.Actions = append(rec.Actions, game.Action{
			Position:  pos,
			Type:      a.Type,
			Amount:    a.Amount,
			RaiseTo:   a.RaiseTo,
			Street:    a.Street,
			Timestamp: a.Time,
			AllIn:     a.AllIn,
		})
	}
	return rec, nil
}

func (t tableFile) config() (game.TableConfig, error) {
	cfg := game.TableConfig{
		SmallBlind:     t.SmallBlind,
		BigBlind:       t.BigBlind,
		EffectiveStack: t.EffectiveStack,
	}
	for _, name := range t.Positions {
		pos, err := game.ParsePosition(name)
		if err != nil {
			return cfg, fmt.Errorf("table: %w", err)
		}
		cfg.ActivePositions = append(cfg.ActivePositions, pos)
	}
	if len(t.Stacks) > 0 {
		cfg.CustomStacks = make(map[game.Position]int, len(t.Stacks))
		for name, stack := range t.Stacks {
			pos, err := game.ParsePosition(name)
			if err != nil {
				return cfg, fmt.Errorf("table stacks: %w", err)
			}
			cfg.CustomStacks[pos] = stack
		}
	}
	if t.Straddle != nil {
		pos, err := game.ParsePosition(t.Straddle.Position)
		if err != nil {
			return cfg, fmt.Errorf("table straddle: %w", err)
		}
		cfg.Straddle = &game.Straddle{Position: pos, Amount: t.Straddle.Amount}
	}
	return cfg, nil
}

func (s seatFile) parse(who string) (game.Position, []deck.Card, error) {
	var pos game.Position
	if s.Position != "" {
		p, err := game.ParsePosition(s.Position)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", who, err)
		}
		pos = p
	}
	cards, err := parseCards(s.Cards)
	if err != nil {
		return "", nil, fmt.Errorf("%s cards: %w", who, err)
	}
	return pos, cards, nil
}

func (b boardFile) parse() (hand.Board, error) {
	var board hand.Board
	var err error
	if board.Flop, err = parseCards(b.Flop); err != nil {
		return board, fmt.Errorf("flop: %w", err)
	}
	if board.Turn, err = parseCards(b.Turn); err != nil {
		return board, fmt.Errorf("turn: %w", err)
	}
	if board.River, err = parseCards(b.River); err != nil {
		return board, fmt.Errorf("river: %w", err)
	}
	return board, nil
}

func parseCards(in []string) ([]deck.Card, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]deck.Card, 0, len(in))
	for _, s := range in {
		c, err := deck.ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
