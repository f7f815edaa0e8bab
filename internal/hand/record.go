// Package hand holds the record of one annotated hand and the Recorder that
// keeps it in step with a replay session.
package hand

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
)

// Result is how the hand ended for hero
type Result string

const (
	ResultNone    Result = ""
	ResultWon     Result = "won"
	ResultLost    Result = "lost"
	ResultChopped Result = "chopped"
)

// ParseResult accepts won, lost or chopped
func ParseResult(s string) (Result, error) {
	switch r := Result(s); r {
	case ResultWon, ResultLost, ResultChopped:
		return r, nil
	}
	return ResultNone, fmt.Errorf("unknown result %q, want won, lost or chopped", s)
}

// GameType distinguishes cash games from tournaments
type GameType string

const (
	Cash       GameType = "cash"
	Tournament GameType = "tournament"
)

// RakeStructure names how the house takes its cut
type RakeStructure string

const (
	RakePercentageCapped RakeStructure = "percentage_capped"
	RakeFixed            RakeStructure = "fixed"
	RakePercentageOnly   RakeStructure = "percentage_only"
)

// Rake describes the house cut at the table
type Rake struct {
	Structure  RakeStructure
	Percentage float64 // 5 means 5%
	Cap        int
	Amount     int // fixed structure only
}

// Taken returns the rake for a pot, rounded down to whole chips
func (r Rake) Taken(pot int) int {
	switch r.Structure {
	case RakeFixed:
		return min(r.Amount, pot)
	case RakePercentageOnly:
		return int(float64(pot) * r.Percentage / 100)
	case RakePercentageCapped:
		taken := int(float64(pot) * r.Percentage / 100)
		if r.Cap > 0 {
			taken = min(taken, r.Cap)
		}
		return taken
	}
	return 0
}

// HandTags is the known tag vocabulary offered when summarising a hand
var HandTags = []string{
	"Value Bet", "Bluff", "Semi-Bluff", "Slow Play", "Fast Play",
	"Bad Beat", "Cooler", "Mistake", "Good Fold", "Good Call",
	"Overbet", "Underbet", "Check-Raise", "Squeeze", "Float",
	"Barrel", "Give Up", "Showdown", "All-In", "Hero Call",
}

// VillainTypes are the common opponent descriptions
var VillainTypes = []string{
	"Tight Aggressive (TAG)",
	"Loose Aggressive (LAG)",
	"Tight Passive (Rock)",
	"Loose Passive (Fish)",
	"Maniac",
	"Nit",
	"Regular",
	"Unknown",
}

// Board holds the community cards dealt so far
type Board struct {
	Flop  []deck.Card
	Turn  []deck.Card
	River []deck.Card
}

// Street returns the cards dealt on s, nil for preflop
func (b Board) Street(s game.Street) []deck.Card {
	switch s {
	case game.Flop:
		return b.Flop
	case game.Turn:
		return b.Turn
	case game.River:
		return b.River
	}
	return nil
}

// Cards returns every board card in dealing order
func (b Board) Cards() []deck.Card {
	return slices.Concat(b.Flop, b.Turn, b.River)
}

// Record is everything known about one hand. It is the artifact the store
// persists; the betting fields mirror the session that produced them.
type Record struct {
	ID string

	// table and session metadata
	StakeLevel    string
	Casino        string
	Location      string
	GameType      GameType
	Rake          Rake
	VillainType   string
	GeneralNotes  string
	SessionNotes  string
	Table         game.TableConfig

	HeroPosition    game.Position
	HeroCards       []deck.Card
	VillainPosition game.Position
	VillainCards    []deck.Card
	Board           Board

	Actions       []game.Action // every entry in street order, forced posts included
	CurrentStreet game.Street
	ForceEnded    []game.Street
	PotSize       int

	Tags           []string
	Result         Result
	AmountWon      int // net for hero, negative when lost
	SummaryNotes   string
	LessonsLearned string

	Created   time.Time
	Completed time.Time // zero until the summary is saved
}

// IsComplete reports whether the hand has been summarised
func (r *Record) IsComplete() bool {
	return !r.Completed.IsZero()
}

// StreetActions returns the logged entries for one street
func (r *Record) StreetActions(s game.Street) []game.Action {
	var out []game.Action
	for _, a := range r.Actions {
		if a.Street == s {
			out = append(out, a)
		}
	}
	return out
}

// HasTag reports whether tag is set on the record
func (r *Record) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Clone returns a deep copy
func (r *Record) Clone() *Record {
	out := *r
	out.Table = r.Table.Clone()
	out.HeroCards = slices.Clone(r.HeroCards)
	out.VillainCards = slices.Clone(r.VillainCards)
	out.Board = Board{
		Flop:  slices.Clone(r.Board.Flop),
		Turn:  slices.Clone(r.Board.Turn),
		River: slices.Clone(r.Board.River),
	}
	out.Actions = slices.Clone(r.Actions)
	out.ForceEnded = slices.Clone(r.ForceEnded)
	out.Tags = slices.Clone(r.Tags)
	return &out
}
