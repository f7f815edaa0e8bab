package hand

import (
	"errors"
	"fmt"

	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
)

var (
	// ErrDuplicateCard is returned when a card appears twice across hole cards and board
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrCardCount is returned when a street or hand has the wrong number of cards
	ErrCardCount = errors.New("wrong number of cards")
)

// boardSize is how many cards each street deals
var boardSize = map[game.Street]int{game.Flop: 3, game.Turn: 1, game.River: 1}

func checkCount(what string, cards []deck.Card, want int) error {
	if len(cards) != 0 && len(cards) != want {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrCardCount, what, want, len(cards))
	}
	return nil
}

// ValidateCards checks hole cards and board for sizes and duplicates. Empty
// fields are allowed; hands are often recorded before every card is known.
func (r *Record) ValidateCards() error {
	var errs []error
	errs = append(errs,
		checkCount("hero cards", r.HeroCards, 2),
		checkCount("villain cards", r.VillainCards, 2),
	)
	for _, s := range []game.Street{game.Flop, game.Turn, game.River} {
		errs = append(errs, checkCount(s.String(), r.Board.Street(s), boardSize[s]))
	}
	if len(r.Board.River) > 0 && len(r.Board.Turn) == 0 {
		errs = append(errs, fmt.Errorf("%w: river dealt without a turn", ErrCardCount))
	}
	if len(r.Board.Turn) > 0 && len(r.Board.Flop) == 0 {
		errs = append(errs, fmt.Errorf("%w: turn dealt without a flop", ErrCardCount))
	}

	all := make([]deck.Card, 0, 9)
	all = append(all, r.HeroCards...)
	all = append(all, r.VillainCards...)
	all = append(all, r.Board.Cards()...)
	if dup, ok := deck.FindDuplicate(all); ok {
		errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateCard, dup))
	}

	return errors.Join(errs...)
}
