package game

import "time"

// Action is one immutable entry in the hand's action log.
//
// Which amount field is authoritative depends on Type:
//   - PostBlind, PostStraddle, Call, Bet: Amount is the chips added to the pot.
//   - Raise: RaiseTo is the new total contributed this street; Amount is the
//     incremental chips the raise added.
//   - Fold, Check: neither field is used.
//
// AllIn is never logged as its own type. The engine reclassifies it as a bet,
// raise or call at execution time and sets the AllIn flag on that entry.
type Action struct {
	Position  Position
	Type      ActionType
	Amount    int
	RaiseTo   int
	Street    Street
	Timestamp time.Time
	AllIn     bool // player had no chips left after this action
}

// Size returns the amount the engine expects for this action's type. Replaying
// an entry always goes through Size so raises are fed their raise-to total.
func (a Action) Size() int {
	switch a.Type {
	case Raise:
		return a.RaiseTo
	case Call, Bet, PostBlind, PostStraddle:
		return a.Amount
	default:
		return 0
	}
}

// FoldAction builds a fold entry
func FoldAction(pos Position) Action {
	return Action{Position: pos, Type: Fold}
}

// CheckAction builds a check entry
func CheckAction(pos Position) Action {
	return Action{Position: pos, Type: Check}
}

// CallAction builds a call entry for the exact chips owed
func CallAction(pos Position, amount int) Action {
	return Action{Position: pos, Type: Call, Amount: amount}
}

// BetAction builds an opening bet entry
func BetAction(pos Position, amount int) Action {
	return Action{Position: pos, Type: Bet, Amount: amount}
}

// RaiseToAction builds a raise entry to a new total contribution
func RaiseToAction(pos Position, raiseTo int) Action {
	return Action{Position: pos, Type: Raise, RaiseTo: raiseTo}
}

// AllInAction builds an all-in request; the engine decides what it becomes
func AllInAction(pos Position) Action {
	return Action{Position: pos, Type: AllIn}
}
