package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// Streets lists every street in dealing order
var Streets = []Street{Preflop, Flop, Turn, River}

func (s Street) String() string {
	if !s.Valid() {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// Valid reports whether s is one of the four betting rounds
func (s Street) Valid() bool { return s >= Preflop && s <= River }

// Next returns the street dealt after s. The second result is false on the river.
func (s Street) Next() (Street, bool) {
	if s >= River {
		return s, false
	}
	return s + 1, true
}

// MarshalText implements encoding.TextMarshaler
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Street) UnmarshalText(text []byte) error {
	parsed, err := ParseStreet(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStreet converts a street name to a Street
func ParseStreet(name string) (Street, error) {
	for _, s := range Streets {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown street %q", name)
}

// ActionType is the kind of betting event recorded in the action log
type ActionType int

const (
	PostBlind ActionType = iota
	PostStraddle
	Fold
	Check
	Call
	Bet
	Raise
	AllIn
)

var actionTypeNames = [...]string{"post_blind", "post_straddle", "fold", "check", "call", "bet", "raise", "all_in"}

func (a ActionType) String() string {
	if a < PostBlind || a > AllIn {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionTypeNames[a]
}

// Forced reports whether the action is a non-discretionary blind or straddle post
func (a ActionType) Forced() bool {
	return a == PostBlind || a == PostStraddle
}

// MarshalText implements encoding.TextMarshaler
func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ActionType) UnmarshalText(text []byte) error {
	parsed, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseActionType converts a name such as "raise" or "all-in" to an ActionType
func ParseActionType(name string) (ActionType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch normalized {
	case "allin":
		return AllIn, nil
	case "raise_to", "raiseto":
		return Raise, nil
	}
	for i, n := range actionTypeNames {
		if n == normalized {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}
