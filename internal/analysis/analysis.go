// Package analysis computes the post-hoc figures shown when summarising a
// recorded hand: what hero put in, how hero's hand developed street by
// street, and the net result.
package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
)

// HeroContribution sums the chips hero put into the pot over every street
func HeroContribution(actions []game.Action, hero game.Position) int {
	if hero == "" {
		return 0
	}
	total := 0
	for _, a := range actions {
		if a.Position != hero {
			continue
		}
		switch a.Type {
		case game.Bet, game.Call, game.Raise, game.PostBlind, game.PostStraddle, game.AllIn:
			total += a.Amount
		}
	}
	return total
}

// InferAmount guesses hero's net result from the outcome when no amount was
// entered. A chop is assumed to be two ways.
func InferAmount(result hand.Result, pot, contribution int) int {
	switch result {
	case hand.ResultWon:
		return pot - contribution
	case hand.ResultLost:
		return -contribution
	case hand.ResultChopped:
		return pot/2 - contribution
	}
	return 0
}

// StreetStrength is hero's hand at one point of the progression
type StreetStrength struct {
	Street      game.Street
	Cards       []deck.Card
	Strength    Strength
	Description string
}

// Progression follows hero's made hand through the streets dealt. It is nil
// without two hole cards.
func Progression(r *hand.Record) []StreetStrength {
	if len(r.HeroCards) < 2 {
		return nil
	}

	position := string(r.HeroPosition)
	if position == "" {
		position = "Unknown"
	}
	desc := fmt.Sprintf("%s in %s position", cardString(r.HeroCards), position)
	if class, err := deck.StartingHand(r.HeroCards); err == nil {
		desc = fmt.Sprintf("%s (%s) in %s position", cardString(r.HeroCards), class, position)
	}
	out := []StreetStrength{{
		Street:      game.Preflop,
		Cards:       r.HeroCards,
		Strength:    Incomplete,
		Description: desc,
	}}

	cards := append([]deck.Card(nil), r.HeroCards...)
	steps := []struct {
		street game.Street
		dealt  []deck.Card
		format string
	}{
		{game.Flop, r.Board.Flop, "Made %s on the flop"},
		{game.Turn, r.Board.Turn, "%s after turn"},
		{game.River, r.Board.River, "Final hand: %s"},
	}
	for _, step := range steps {
		if len(step.dealt) == 0 {
			break
		}
		cards = append(cards, step.dealt...)
		s := HandStrength(cards)
		out = append(out, StreetStrength{
			Street:      step.street,
			Cards:       append([]deck.Card(nil), cards...),
			Strength:    s,
			Description: fmt.Sprintf(step.format, s),
		})
	}
	return out
}

// Stats is the summary overview of a hand
type Stats struct {
	TotalPot         int
	HeroContribution int
	NetResult        int
	BBWonLost        float64 // rounded to one decimal
	EquityEstimate   float64 // from the final made hand, 0 without a board
}

// HandStats builds the overview for a record
func HandStats(r *hand.Record) Stats {
	bb := r.Table.BigBlind
	if bb <= 0 {
		bb = 1
	}
	st := Stats{
		TotalPot:         r.PotSize,
		HeroContribution: HeroContribution(r.Actions, r.HeroPosition),
		NetResult:        r.AmountWon,
		BBWonLost:        math.Round(float64(r.AmountWon)/float64(bb)*10) / 10,
	}
	if prog := Progression(r); len(prog) > 1 {
		st.EquityEstimate = EquityEstimate(prog[len(prog)-1].Strength)
	}
	return st
}

// GroupByStreet splits a combined log into per-street slices
func GroupByStreet(actions []game.Action) map[game.Street][]game.Action {
	out := make(map[game.Street][]game.Action, len(game.Streets))
	for _, a := range actions {
		out[a.Street] = append(out[a.Street], a)
	}
	return out
}

func cardString(cards []deck.Card) string {
	return strings.Join(deck.Strings(cards), "")
}
