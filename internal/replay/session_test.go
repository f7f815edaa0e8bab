package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handrecorder/internal/game"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(sixMax(), WithClock(newMockClock(t)))
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, game.Preflop, s.Street())
	preflop := s.Log().Street(game.Preflop)
	require.Len(t, preflop, 2, "blind posts are logged")
	assert.Equal(t, game.PostBlind, preflop[0].Type)
	assert.False(t, s.Log().HasVoluntary(game.Preflop))
	assert.Equal(t, game.UTG, s.State().ActionOn)

	_, err := NewSession(game.TableConfig{})
	assert.ErrorContains(t, err, "invalid table config")
}

func TestSession_Act(t *testing.T) {
	s := newTestSession(t)
	act(t, s, step{game.UTG, game.Raise, 6})

	entries := s.Log().Voluntary(game.Preflop)
	require.Len(t, entries, 1)
	assert.Equal(t, 6, entries[0].RaiseTo)

	err := s.Act(game.CO, game.Fold, 0)
	require.ErrorIs(t, err, game.ErrIllegalAction)
	assert.Equal(t, 3, s.Log().Len(), "rejected action is not logged")
	assert.Equal(t, game.MP, s.State().ActionOn)
}

func TestSession_Undo(t *testing.T) {
	s := newTestSession(t)
	act(t, s, step{game.UTG, game.Raise, 6}, step{game.MP, game.Call, 6})
	require.Equal(t, 15, s.State().Pot)

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, 9, s.State().Pot)
	assert.Equal(t, game.MP, s.State().ActionOn)

	undone, err = s.Undo()
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, 3, s.State().Pot)
	assert.Equal(t, game.UTG, s.State().ActionOn)

	for range 3 {
		undone, err = s.Undo()
		require.NoError(t, err)
		assert.False(t, undone, "blinds are never undone")
	}
	assert.Len(t, s.Log().Street(game.Preflop), 2)
	assert.Equal(t, 3, s.State().Pot)
}

func TestSession_UndoStaysOnCurrentStreet(t *testing.T) {
	s := newTestSession(t)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	act(t, s, flopSteps[0])

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.True(t, undone)

	undone, err = s.Undo()
	require.NoError(t, err)
	assert.False(t, undone, "undo never reaches into preflop")

	assert.Equal(t, game.Flop, s.Street())
	assert.Len(t, s.Log().Voluntary(game.Preflop), len(preflopSteps))
	assert.Equal(t, 45, s.State().Pot)
	assert.Equal(t, game.UTG, s.State().ActionOn)
}

func TestSession_UndoKeepsOriginalTimestamps(t *testing.T) {
	clock := newMockClock(t)
	s, err := NewSession(sixMax(), WithClock(clock))
	require.NoError(t, err)

	first := clock.Now()
	act(t, s, step{game.UTG, game.Raise, 6})
	clock.Advance(30 * time.Second)
	act(t, s, step{game.MP, game.Call, 6})
	clock.Advance(30 * time.Second)

	_, err = s.Undo()
	require.NoError(t, err)

	entries := s.Log().Voluntary(game.Preflop)
	require.Len(t, entries, 1)
	assert.Equal(t, first, entries[0].Timestamp)
}

func TestSession_ClearStreet(t *testing.T) {
	s := newTestSession(t)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	fresh := s.State()

	act(t, s, flopSteps[:3]...)
	require.NoError(t, s.ClearStreet())

	assert.Empty(t, s.Log().Street(game.Flop))
	assert.Len(t, s.Log().Voluntary(game.Preflop), len(preflopSteps))
	assert.Equal(t, fresh, s.State())
}

func TestSession_ClearPreflopKeepsBlinds(t *testing.T) {
	s := newTestSession(t)
	act(t, s, step{game.UTG, game.Raise, 6}, step{game.MP, game.Fold, 0})

	require.NoError(t, s.ClearStreet())
	assert.Len(t, s.Log().Street(game.Preflop), 2)
	assert.Equal(t, 3, s.State().Pot)
	assert.Equal(t, game.UTG, s.State().ActionOn)
}

func TestSession_ForceEndStreet(t *testing.T) {
	s := newTestSession(t)
	act(t, s, step{game.UTG, game.Raise, 6})

	assert.True(t, s.ForceEndStreet())
	assert.False(t, s.ForceEndStreet())
	assert.True(t, s.State().Closed)
	assert.True(t, s.IsForceEnded(game.Preflop))

	require.NoError(t, s.Initialize())
	assert.True(t, s.State().Closed, "force end survives reconstruction")

	undone, err := s.Undo()
	require.NoError(t, err)
	require.True(t, undone)
	assert.False(t, s.IsForceEnded(game.Preflop), "undo reopens the street")
	assert.False(t, s.State().Closed)
	assert.Equal(t, game.UTG, s.State().ActionOn)
}

func TestSession_ForceEndThenNextStreet(t *testing.T) {
	s := newTestSession(t)
	act(t, s, step{game.UTG, game.Raise, 6})
	require.ErrorIs(t, s.NextStreet(), ErrStreetOpen)

	s.ForceEndStreet()
	require.NoError(t, s.NextStreet())
	assert.Equal(t, game.Flop, s.Street())
	assert.Equal(t, game.SB, s.State().ActionOn)
	assert.Equal(t, []game.Street{game.Preflop}, s.ForceEnded())
}

func TestSession_NextStreetErrors(t *testing.T) {
	t.Run("hand over", func(t *testing.T) {
		s := newTestSession(t)
		act(t, s,
			step{game.UTG, game.Raise, 6},
			step{game.MP, game.Fold, 0},
			step{game.CO, game.Fold, 0},
			step{game.BTN, game.Fold, 0},
			step{game.SB, game.Fold, 0},
			step{game.BB, game.Fold, 0},
		)
		require.True(t, s.State().Closed)
		assert.ErrorIs(t, s.NextStreet(), ErrHandOver)
		assert.True(t, s.Finished())
		assert.Equal(t, []game.Position{game.UTG}, s.InHand())
	})

	t.Run("after the river", func(t *testing.T) {
		s := newTestSession(t)
		act(t, s, preflopSteps...)
		require.NoError(t, s.NextStreet())
		act(t, s, flopSteps...)
		require.NoError(t, s.NextStreet())
		require.NoError(t, s.NextStreet())
		require.Equal(t, game.River, s.Street())

		assert.True(t, s.Finished())
		assert.ErrorIs(t, s.NextStreet(), ErrLastStreet)
	})
}

func TestResume(t *testing.T) {
	clock := newMockClock(t)
	s, err := NewSession(sixMax(), WithClock(clock))
	require.NoError(t, err)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	act(t, s, flopSteps[0])
	s.ForceEndStreet()

	resumed, err := Resume(s.Config(), s.Log(), s.Street(), s.ForceEnded(), WithClock(clock))
	require.NoError(t, err)
	assert.Equal(t, s.State(), resumed.State())
	assert.True(t, resumed.IsForceEnded(game.Flop))
}

func TestResume_CorruptLog(t *testing.T) {
	l := newLog(t, game.Action{Position: game.BTN, Type: game.Check, Street: game.Preflop})

	_, err := Resume(sixMax(), l, game.Preflop, nil)
	require.ErrorIs(t, err, ErrReconstruction)
}

func TestSession_FailedReplayLeavesStateAlone(t *testing.T) {
	l := newLog(t)
	for _, st := range preflopSteps {
		require.NoError(t, l.Append(game.Action{Position: st.pos, Type: st.typ, Amount: st.amount, RaiseTo: st.amount, Street: game.Preflop}))
	}
	require.NoError(t, l.Append(game.Action{Position: game.BTN, Type: game.Check, Street: game.Flop}))

	s, err := Resume(sixMax(), l, game.Preflop, nil)
	require.NoError(t, err)
	before := s.State()

	err = s.NextStreet()
	require.ErrorIs(t, err, ErrReconstruction)
	assert.Equal(t, game.Preflop, s.Street())
	assert.Equal(t, before, s.State())
}

func TestSession_GoToStreetKeepsLaterStreets(t *testing.T) {
	s := newTestSession(t)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	act(t, s, flopSteps[:2]...)
	onFlop := s.State()

	require.NoError(t, s.GoToStreet(game.Preflop))
	assert.Equal(t, game.Preflop, s.Street())
	assert.Equal(t, 45, s.State().Pot)
	assert.True(t, s.State().Closed)
	assert.Len(t, s.Log().Voluntary(game.Flop), 2, "viewing an earlier street keeps the flop")

	assert.ErrorIs(t, s.GoToStreet(game.Flop), ErrStreetAhead)
	assert.ErrorIs(t, s.GoToStreet(game.Street(9)), ErrInvalidStreet)
	assert.Equal(t, game.Preflop, s.Street())

	require.NoError(t, s.NextStreet())
	assert.Equal(t, onFlop, s.State())
}

func TestSession_EditingEarlierStreetDropsLaterStreets(t *testing.T) {
	s := newTestSession(t)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	act(t, s, flopSteps[:2]...)
	require.True(t, s.ForceEndStreet())
	require.NoError(t, s.GoToStreet(game.Preflop))

	undone, err := s.Undo()
	require.NoError(t, err)
	require.True(t, undone, "MP's fold is undone")
	assert.Empty(t, s.Log().Street(game.Flop))
	assert.Empty(t, s.ForceEnded())
	assert.Equal(t, game.MP, s.State().ActionOn)

	act(t, s, step{game.MP, game.Call, 12})
	require.NoError(t, s.NextStreet())
	assert.Equal(t, 57, s.State().Pot)
	assert.Equal(t, game.UTG, s.State().ActionOn)
	assert.Equal(t, []game.Position{game.UTG, game.MP, game.BTN}, s.InHand())

	rebuilt, err := Reconstruct(s.Config(), s.Log(), game.Flop)
	require.NoError(t, err)
	assert.Equal(t, s.State(), rebuilt.State())
}

func TestSession_ClearRevisitedStreet(t *testing.T) {
	s := newTestSession(t)
	act(t, s, preflopSteps...)
	require.NoError(t, s.NextStreet())
	act(t, s, flopSteps...)
	require.NoError(t, s.NextStreet())
	require.NoError(t, s.GoToStreet(game.Flop))

	require.NoError(t, s.ClearStreet())
	assert.Equal(t, game.Flop, s.Street())
	assert.Empty(t, s.Log().Street(game.Flop))
	assert.Equal(t, 45, s.State().Pot)
	assert.Equal(t, game.UTG, s.State().ActionOn)
}

func TestSession_ActOnReopenedStreetDropsLaterStreets(t *testing.T) {
	l := newLog(t,
		game.Action{Position: game.UTG, Type: game.Raise, Amount: 6, RaiseTo: 6, Street: game.Preflop},
		game.Action{Position: game.BTN, Type: game.Check, Street: game.Flop},
	)
	s, err := Resume(sixMax(), l, game.Preflop, []game.Street{game.Flop})
	require.NoError(t, err)

	act(t, s, step{game.MP, game.Call, 6})
	assert.Empty(t, s.Log().Street(game.Flop))
	assert.Empty(t, s.ForceEnded())
	assert.Len(t, s.Log().Voluntary(game.Preflop), 2)
}
