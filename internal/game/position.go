package game

import (
	"fmt"
	"strings"
)

// Position is a seat label at the table
type Position string

const (
	SB   Position = "SB"
	BB   Position = "BB"
	UTG  Position = "UTG"
	UTG1 Position = "UTG+1"
	UTG2 Position = "UTG+2"
	MP   Position = "MP"
	MP1  Position = "MP+1"
	CO   Position = "CO"
	BTN  Position = "BTN"
)

// CanonicalOrder is the fixed order used to pick the first postflop actor.
var CanonicalOrder = []Position{SB, BB, UTG, UTG1, UTG2, MP, MP1, CO, BTN}

// Positions9Max is the full ring seating order.
var Positions9Max = []Position{SB, BB, UTG, UTG1, UTG2, MP, MP1, CO, BTN}

// Positions6Max is the short-handed seating order.
var Positions6Max = []Position{SB, BB, UTG, MP, CO, BTN}

func (p Position) String() string {
	return string(p)
}

// Valid reports whether p is one of the known position labels
func (p Position) Valid() bool {
	for _, known := range CanonicalOrder {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePosition converts a label such as "utg+1" or "btn" to a Position
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return p, nil
}

func indexOf(positions []Position, p Position) int {
	for i, pos := range positions {
		if pos == p {
			return i
		}
	}
	return -1
}
