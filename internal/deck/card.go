package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol used when displaying cards
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single ASCII letter used in stored card strings
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the single character rank, with T for ten
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the ASCII form of a card (e.g. "As"), which is what hand
// records store.
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Symbol returns the display form of a card (e.g. "A♠")
func (c Card) Symbol() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a single card. Both "As" and "A♠" forms are accepted, as is
// "10" for ten. Parsing is case insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	runes := []rune(s)
	if len(runes) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rank, err := parseRank(runes[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit, err := parseSuit(runes[1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses either a concatenated string ("AsKd") or space/comma
// separated cards ("As Kd", "A♠,K♦").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		field = strings.ReplaceAll(field, "10", "T")
		runes := []rune(field)
		if len(runes)%2 != 0 {
			return nil, fmt.Errorf("invalid card list %q", s)
		}
		for i := 0; i < len(runes); i += 2 {
			card, err := ParseCard(string(runes[i : i+2]))
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FindDuplicate returns the first card that occurs more than once
func FindDuplicate(cards []Card) (Card, bool) {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return c, true
		}
		seen[c] = true
	}
	return Card{}, false
}

// Strings converts cards to their stored ASCII form
func Strings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func parseRank(r rune) (Rank, error) {
	idx := strings.IndexRune(rankLetters, unicode.ToUpper(r))
	if idx < 0 {
		return 0, fmt.Errorf("unknown rank %q", r)
	}
	return Two + Rank(idx), nil
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 's', 'S', '♠', '♤':
		return Spades, nil
	case 'h', 'H', '♥', '♡':
		return Hearts, nil
	case 'd', 'D', '♦', '♢':
		return Diamonds, nil
	case 'c', 'C', '♣', '♧':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", r)
	}
}
