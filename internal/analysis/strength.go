package analysis

import (
	"slices"

	"github.com/lox/handrecorder/internal/deck"
)

// Strength is a coarse made-hand category. It comes from a simplified
// heuristic over rank and suit counts, not a real evaluator: a flush and a
// straight in different cards still count as a straight flush.
type Strength int

const (
	Incomplete Strength = iota
	HighCard
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var strengthNames = [...]string{
	"Incomplete", "High Card", "One Pair", "Two Pair", "Three of a Kind",
	"Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush",
}

func (s Strength) String() string {
	if s < Incomplete || s > RoyalFlush {
		return "Unknown"
	}
	return strengthNames[s]
}

// HandStrength categorises hole cards plus board. Fewer than five cards is
// Incomplete. A full house needs trips plus exactly a pair, so two sets of
// trips read as Three of a Kind.
func HandStrength(cards []deck.Card) Strength {
	if len(cards) < 5 {
		return Incomplete
	}

	rankCounts := make(map[deck.Rank]int)
	suitCounts := make(map[deck.Suit]int)
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	counts := make([]int, 0, len(rankCounts))
	ranks := make([]deck.Rank, 0, len(rankCounts))
	for r, n := range rankCounts {
		counts = append(counts, n)
		ranks = append(ranks, r)
	}
	slices.Sort(counts)
	slices.Reverse(counts)
	slices.Sort(ranks)
	slices.Reverse(ranks)

	flush := false
	for _, n := range suitCounts {
		if n >= 5 {
			flush = true
		}
	}
	straight := isStraight(ranks)
	second := 0
	if len(counts) > 1 {
		second = counts[1]
	}

	switch {
	case straight && flush && ranks[0] == deck.Ace:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	case counts[0] == 4:
		return FourOfAKind
	case counts[0] == 3 && second == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case counts[0] == 3:
		return ThreeOfAKind
	case counts[0] == 2 && second == 2:
		return TwoPair
	case counts[0] == 2:
		return OnePair
	}
	return HighCard
}

// isStraight looks for five consecutive distinct ranks, sorted high to low,
// or the A-2-3-4-5 wheel.
func isStraight(ranks []deck.Rank) bool {
	for i := 0; i+4 < len(ranks); i++ {
		if ranks[i]-ranks[i+4] == 4 {
			return true
		}
	}
	for _, r := range []deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two} {
		if !slices.Contains(ranks, r) {
			return false
		}
	}
	return true
}

// equityByStrength is a rough showdown equity guess per category, in percent
var equityByStrength = map[Strength]float64{
	HighCard:      35,
	OnePair:       55,
	TwoPair:       75,
	ThreeOfAKind:  85,
	Straight:      90,
	Flush:         92,
	FullHouse:     96,
	FourOfAKind:   99,
	StraightFlush: 99.5,
	RoyalFlush:    100,
}

// EquityEstimate returns a rough equity percentage for a category, 50 when unknown
func EquityEstimate(s Strength) float64 {
	if e, ok := equityByStrength[s]; ok {
		return e
	}
	return 50
}
