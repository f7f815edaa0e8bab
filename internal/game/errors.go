package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalAction matches every *ActionError
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidTransition is returned when a street transition skips or repeats a street
	ErrInvalidTransition = errors.New("invalid street transition")
)

// ActionError lists the human readable reasons an action was rejected. The
// engine state is unchanged whenever one is returned.
type ActionError struct {
	Position Position
	Type     ActionType
	Reasons  []string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("illegal %s by %s: %s", e.Type, e.Position, strings.Join(e.Reasons, "; "))
}

// Is makes errors.Is(err, ErrIllegalAction) true for any ActionError
func (e *ActionError) Is(target error) bool {
	return target == ErrIllegalAction
}

func reject(pos Position, typ ActionType, reasons ...string) *ActionError {
	return &ActionError{Position: pos, Type: typ, Reasons: reasons}
}

// Reasons extracts the rejection reasons from err, or nil if err is not an ActionError
func Reasons(err error) []string {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Reasons
	}
	return nil
}
