package replay

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/handrecorder/internal/game"
)

func sixMax() game.TableConfig {
	return game.TableConfig{
		SmallBlind:      1,
		BigBlind:        2,
		EffectiveStack:  100,
		ActivePositions: game.Positions6Max,
	}
}

func newMockClock(t *testing.T) *quartz.Mock {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
	return clock
}

type step struct {
	pos    game.Position
	typ    game.ActionType
	amount int
}

func act(t *testing.T, s *Session, steps ...step) {
	t.Helper()
	for _, st := range steps {
		require.NoError(t, s.Act(st.pos, st.typ, st.amount), "%s %s %d", st.pos, st.typ, st.amount)
	}
}

func newLog(t *testing.T, actions ...game.Action) *Log {
	t.Helper()
	l, err := NewLog(actions...)
	require.NoError(t, err)
	return l
}

func execute(t *testing.T, e *game.Engine, steps ...step) {
	t.Helper()
	for _, st := range steps {
		require.NoError(t, e.Execute(st.pos, st.typ, st.amount), "%s %s %d", st.pos, st.typ, st.amount)
	}
}

// three-bet pot that goes all-in on the flop
var (
	preflopSteps = []step{
		{game.UTG, game.Raise, 6},
		{game.MP, game.Call, 6},
		{game.CO, game.Fold, 0},
		{game.BTN, game.Raise, 18},
		{game.SB, game.Fold, 0},
		{game.BB, game.Fold, 0},
		{game.UTG, game.Call, 12},
		{game.MP, game.Fold, 0},
	}
	flopSteps = []step{
		{game.UTG, game.Check, 0},
		{game.BTN, game.Bet, 20},
		{game.UTG, game.Raise, 60},
		{game.BTN, game.AllIn, 0},
		{game.UTG, game.Call, 22},
	}
)
