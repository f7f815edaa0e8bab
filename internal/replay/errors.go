package replay

import (
	"errors"
	"fmt"

	"github.com/lox/handrecorder/internal/game"
)

var (
	// ErrReconstruction matches every *ReconstructionError
	ErrReconstruction = errors.New("reconstruction failed")

	// ErrStreetOpen is returned when moving on before betting has closed
	ErrStreetOpen = errors.New("betting is still open on this street")
	// ErrHandOver is returned when moving on with at most one player left
	ErrHandOver = errors.New("hand is over")
	// ErrLastStreet is returned when moving on from the river
	ErrLastStreet = errors.New("no street after the river")
	// ErrStreetAhead is returned when going to a street not yet reached
	ErrStreetAhead = errors.New("street has not been reached")

	// ErrInvalidStreet is returned for an entry tagged with no betting round
	ErrInvalidStreet = errors.New("invalid street")
)

// ReconstructionError reports a logged action the engine refused during
// replay. It means the log is corrupt or inconsistent with the config. State
// is the engine as it stood just before the rejected entry, for diagnostics
// only; it must never be shown as the hand's state.
type ReconstructionError struct {
	Street game.Street
	Index  int // position among the street's voluntary entries, -1 for a failed transition
	Action game.Action
	State  game.GameState
	Err    error
}

func (e *ReconstructionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("reconstruct %s: %v", e.Street, e.Err)
	}
	return fmt.Sprintf("reconstruct %s action %d (%s): %v", e.Street, e.Index, game.FormatAction(e.Action), e.Err)
}

func (e *ReconstructionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrReconstruction) true for any ReconstructionError
func (e *ReconstructionError) Is(target error) bool {
	return target == ErrReconstruction
}
