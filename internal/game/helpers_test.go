package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sixMaxConfig() TableConfig {
	return TableConfig{
		SmallBlind:      1,
		BigBlind:        2,
		EffectiveStack:  100,
		ActivePositions: []Position{SB, BB, UTG, MP, CO, BTN},
	}
}

func threeHandedConfig() TableConfig {
	return TableConfig{
		SmallBlind:      1,
		BigBlind:        2,
		EffectiveStack:  100,
		ActivePositions: []Position{SB, BB, UTG},
	}
}

func mustExecute(t *testing.T, e *Engine, pos Position, typ ActionType, amount int) {
	t.Helper()
	require.NoError(t, e.Execute(pos, typ, amount), "%s %s %d", pos, typ, amount)
}

func mustPlayer(t *testing.T, e *Engine, pos Position) Player {
	t.Helper()
	p, ok := e.Player(pos)
	require.True(t, ok, "no player at %s", pos)
	return p
}

// requireConservation checks chips are neither created nor destroyed
func requireConservation(t *testing.T, e *Engine) {
	t.Helper()

	stacks, committed := 0, 0
	for _, p := range e.Players() {
		stacks += p.Stack
		committed += p.Committed
	}
	require.Equal(t, e.Config().TotalChips(), stacks+e.Pot(), "stacks + pot must equal starting chips")
	require.Equal(t, e.Pot(), committed, "pot must equal committed chips")

	if e.Street() == Preflop {
		contributed := 0
		for _, p := range e.Players() {
			contributed += p.Contributed
		}
		require.Equal(t, e.Pot(), contributed, "preflop pot must equal contributions")
	}
}

// closedPreflopThreeHanded plays UTG call, SB call, BB check (pot 6)
func closedPreflopThreeHanded(t *testing.T, cfg TableConfig) *Engine {
	t.Helper()
	e := NewEngine(cfg)
	mustExecute(t, e, UTG, Call, 2)
	mustExecute(t, e, SB, Call, 1)
	mustExecute(t, e, BB, Check, 0)
	require.True(t, e.Closed())
	require.NoError(t, e.TransitionTo(Flop))
	return e
}
