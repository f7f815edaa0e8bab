package game

import (
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_PostsBlinds(t *testing.T) {
	e := NewEngine(sixMaxConfig())

	assert.Equal(t, Preflop, e.Street())
	assert.Equal(t, 3, e.Pot())
	assert.Equal(t, 2, e.CurrentBet())
	assert.Equal(t, 2, e.LastRaiseAmount())
	assert.Equal(t, UTG, e.ActionOn())
	assert.False(t, e.Closed())

	actions := e.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, Action{Position: SB, Type: PostBlind, Amount: 1, Street: Preflop, Timestamp: actions[0].Timestamp}, actions[0])
	assert.Equal(t, BB, actions[1].Position)
	assert.Equal(t, 2, actions[1].Amount)

	sb := mustPlayer(t, e, SB)
	assert.Equal(t, 99, sb.Stack)
	assert.Equal(t, 1, sb.Contributed)
	assert.False(t, sb.HasActed, "posting a blind is not acting")

	requireConservation(t, e)
}

func TestNewEngine_Straddle(t *testing.T) {
	cfg := sixMaxConfig()
	cfg.Straddle = &Straddle{Position: UTG, Amount: 4}
	e := NewEngine(cfg)

	assert.Equal(t, 7, e.Pot())
	assert.Equal(t, 4, e.CurrentBet())
	assert.Equal(t, 4, e.LastRaiseAmount())
	assert.Equal(t, MP, e.ActionOn(), "action starts left of the straddle")

	actions := e.Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, PostStraddle, actions[2].Type)
	assert.Equal(t, UTG, actions[2].Position)

	err := e.Execute(MP, Raise, 7)
	assert.Equal(t, []string{"Minimum raise to $8. Current raise to $7 is too small"}, Reasons(err))

	mustExecute(t, e, MP, Call, 4)
	mustExecute(t, e, CO, Fold, 0)
	mustExecute(t, e, BTN, Fold, 0)
	mustExecute(t, e, SB, Fold, 0)
	mustExecute(t, e, BB, Call, 2)

	assert.Equal(t, UTG, e.ActionOn(), "straddler keeps the option")
	assert.True(t, e.State().Can(Check))

	mustExecute(t, e, UTG, Check, 0)
	assert.True(t, e.Closed())
	assert.Equal(t, 13, e.Pot())
	requireConservation(t, e)
}

func TestNewEngine_InactiveStraddleIgnored(t *testing.T) {
	cfg := sixMaxConfig()
	cfg.Straddle = &Straddle{Position: UTG1, Amount: 4}
	e := NewEngine(cfg)

	assert.Equal(t, 3, e.Pot())
	assert.Equal(t, 2, e.CurrentBet())
	assert.Equal(t, UTG, e.ActionOn())
}

func TestNewEngine_CustomStacks(t *testing.T) {
	cfg := sixMaxConfig()
	cfg.CustomStacks = map[Position]int{BTN: 250, CO: 0}
	e := NewEngine(cfg)

	assert.Equal(t, 250, mustPlayer(t, e, BTN).Stack)
	assert.Equal(t, 100, mustPlayer(t, e, CO).Stack, "zero custom stack falls back to effective stack")
	requireConservation(t, e)
}

func TestNewEngine_ShortBlindIsAllIn(t *testing.T) {
	cfg := threeHandedConfig()
	cfg.CustomStacks = map[Position]int{BB: 1}
	e := NewEngine(cfg)

	bb := mustPlayer(t, e, BB)
	assert.Equal(t, 1, bb.Contributed)
	assert.True(t, bb.AllIn)
	assert.Equal(t, 2, e.CurrentBet())
	assert.Equal(t, 2, e.Pot())
	requireConservation(t, e)
}

func TestScenario_RaiseFoldsCall(t *testing.T) {
	e := NewEngine(sixMaxConfig())

	mustExecute(t, e, UTG, Raise, 6)
	utg := mustPlayer(t, e, UTG)
	assert.Equal(t, 6, utg.Contributed)
	assert.Equal(t, 9, e.Pot())
	assert.Equal(t, 6, e.CurrentBet())
	assert.Equal(t, 4, e.LastRaiseAmount())

	last := e.Actions()[len(e.Actions())-1]
	assert.Equal(t, Raise, last.Type)
	assert.Equal(t, 6, last.Amount)
	assert.Equal(t, 6, last.RaiseTo)

	for _, pos := range []Position{MP, CO, BTN, SB} {
		mustExecute(t, e, pos, Fold, 0)
		assert.False(t, e.Closed(), "closed after %s folded", pos)
	}

	require.Equal(t, BB, e.ActionOn())
	mustExecute(t, e, BB, Call, 4)

	bb := mustPlayer(t, e, BB)
	assert.Equal(t, 6, bb.Contributed)
	assert.Equal(t, 13, e.Pot())
	assert.True(t, e.IsActionComplete())
	assert.True(t, e.Closed())
	assert.Equal(t, Position(""), e.ActionOn())
	requireConservation(t, e)
}

func TestClosing_ThreeHandedLimpCheck(t *testing.T) {
	e := NewEngine(threeHandedConfig())

	mustExecute(t, e, UTG, Call, 2)
	mustExecute(t, e, SB, Fold, 0)
	assert.Equal(t, BB, e.ActionOn())
	assert.False(t, e.Closed())

	mustExecute(t, e, BB, Check, 0)
	assert.True(t, e.Closed())
	assert.Equal(t, Position(""), e.ActionOn())
	assert.Equal(t, 5, e.Pot())
}

func TestClosing_BigBlindGetsOption(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	for _, pos := range []Position{UTG, MP, CO, BTN} {
		mustExecute(t, e, pos, Fold, 0)
	}
	mustExecute(t, e, SB, Call, 1)

	assert.Equal(t, BB, e.ActionOn(), "matched contributions alone do not close preflop")
	st := e.State()
	assert.True(t, st.Can(Check))
	assert.True(t, st.Can(Raise))

	mustExecute(t, e, BB, Raise, 6)
	assert.Equal(t, SB, e.ActionOn())
	mustExecute(t, e, SB, Call, 4)
	assert.True(t, e.Closed())
	assert.Equal(t, 12, e.Pot())
}

func TestClosing_LonePlayerMustStillAct(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	for _, pos := range []Position{UTG, MP, CO, BTN, SB} {
		mustExecute(t, e, pos, Fold, 0)
	}

	assert.False(t, e.Closed())
	assert.Equal(t, BB, e.ActionOn())
	mustExecute(t, e, BB, Check, 0)
	assert.True(t, e.Closed())
}

func TestClosing_LonePlayerFacingAllIn(t *testing.T) {
	cfg := threeHandedConfig()
	cfg.CustomStacks = map[Position]int{UTG: 40}
	e := NewEngine(cfg)

	mustExecute(t, e, UTG, AllIn, 0)
	mustExecute(t, e, SB, Fold, 0)

	// UTG is all-in, SB folded: BB is the only live player and owes 38
	require.False(t, e.Closed())
	require.Equal(t, BB, e.ActionOn())
	mustExecute(t, e, BB, Call, 38)
	assert.True(t, e.Closed())
	assert.Equal(t, 81, e.Pot())
	requireConservation(t, e)
}

func TestMinRaiseEnforcement(t *testing.T) {
	tests := []struct {
		name    string
		bbStack int
		wantErr []string
	}{
		{
			name:    "raise below minimum rejected",
			bbStack: 100,
			wantErr: []string{"Minimum raise to $20. Current raise to $15 is too small"},
		},
		{
			name:    "short all-in raise accepted",
			bbStack: 17, // 15 left after the preflop blind
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := threeHandedConfig()
			cfg.CustomStacks = map[Position]int{BB: tt.bbStack}
			e := closedPreflopThreeHanded(t, cfg)

			mustExecute(t, e, SB, Bet, 10)
			require.Equal(t, 10, e.CurrentBet())
			require.Equal(t, 10, e.LastRaiseAmount())

			before := e.State()
			err := e.Execute(BB, Raise, 15)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, ErrIllegalAction)
				assert.Equal(t, tt.wantErr, Reasons(err))
				assert.Equal(t, before, e.State(), "rejected action must not change state")
				return
			}

			require.NoError(t, err)
			bb := mustPlayer(t, e, BB)
			assert.True(t, bb.AllIn)
			assert.Equal(t, 0, bb.Stack)
			assert.Equal(t, 15, e.CurrentBet())
			assert.Equal(t, 5, e.LastRaiseAmount())
			assert.Equal(t, UTG, e.ActionOn())
			requireConservation(t, e)
		})
	}
}

func TestAllInShortCallDoesNotReopen(t *testing.T) {
	cfg := TableConfig{
		SmallBlind:      1,
		BigBlind:        2,
		EffectiveStack:  200,
		ActivePositions: []Position{SB, BB, UTG, BTN},
		CustomStacks:    map[Position]int{UTG: 32},
	}
	e := NewEngine(cfg)
	mustExecute(t, e, UTG, Call, 2)
	mustExecute(t, e, BTN, Call, 2)
	mustExecute(t, e, SB, Call, 1)
	mustExecute(t, e, BB, Check, 0)
	require.True(t, e.Closed())
	require.NoError(t, e.TransitionTo(Flop))

	mustExecute(t, e, SB, Bet, 50)
	mustExecute(t, e, BB, Call, 50)
	require.Equal(t, UTG, e.ActionOn())
	require.Equal(t, 30, mustPlayer(t, e, UTG).Stack)

	mustExecute(t, e, UTG, AllIn, 0)

	last := e.Actions()[len(e.Actions())-1]
	assert.Equal(t, Call, last.Type, "all-in for less than the bet is a call")
	assert.Equal(t, 30, last.Amount)
	assert.True(t, last.AllIn)
	assert.Equal(t, 50, e.CurrentBet())

	assert.True(t, mustPlayer(t, e, SB).HasActed, "short all-in must not reopen action")
	assert.True(t, mustPlayer(t, e, BB).HasActed, "short all-in must not reopen action")
	assert.Equal(t, BTN, e.ActionOn())

	mustExecute(t, e, BTN, Call, 50)
	assert.True(t, e.Closed())
	assert.Equal(t, 188, e.Pot())
	requireConservation(t, e)
}

func TestAllInShortCallByCall(t *testing.T) {
	cfg := threeHandedConfig()
	cfg.CustomStacks = map[Position]int{SB: 31}
	e := closedPreflopThreeHanded(t, cfg)

	// SB has 29 behind and faces a 50 bet
	mustExecute(t, e, SB, Check, 0)
	mustExecute(t, e, BB, Bet, 50)
	mustExecute(t, e, UTG, Call, 50)

	err := e.Execute(SB, Call, 50)
	assert.Equal(t, []string{"Must call exactly $29"}, Reasons(err))
	mustExecute(t, e, SB, Call, 29)
	assert.True(t, mustPlayer(t, e, SB).AllIn)
	assert.True(t, e.Closed())
}

func TestAllInReclassification(t *testing.T) {
	t.Run("raise preflop", func(t *testing.T) {
		e := NewEngine(sixMaxConfig())
		mustExecute(t, e, UTG, AllIn, 0)

		last := e.Actions()[len(e.Actions())-1]
		assert.Equal(t, Raise, last.Type)
		assert.Equal(t, 100, last.Amount)
		assert.Equal(t, 100, last.RaiseTo)
		assert.True(t, last.AllIn)
		assert.Equal(t, 100, e.CurrentBet())
		assert.Equal(t, 98, e.LastRaiseAmount())
		assert.Equal(t, MP, e.ActionOn())
		assert.False(t, mustPlayer(t, e, BB).HasActed)
	})

	t.Run("bet postflop", func(t *testing.T) {
		e := closedPreflopThreeHanded(t, threeHandedConfig())
		mustExecute(t, e, SB, AllIn, 0)

		last := e.Actions()[len(e.Actions())-1]
		assert.Equal(t, Bet, last.Type)
		assert.Equal(t, 98, last.Amount)
		assert.Equal(t, Flop, last.Street)
		assert.Equal(t, 98, e.CurrentBet())
		assert.Equal(t, 98, e.LastRaiseAmount())
		assert.Equal(t, BB, e.ActionOn())
	})

	t.Run("reopens action for players who had matched", func(t *testing.T) {
		cfg := threeHandedConfig()
		cfg.CustomStacks = map[Position]int{UTG: 8}
		e := NewEngine(cfg)
		mustExecute(t, e, UTG, Call, 2)
		mustExecute(t, e, SB, Call, 1)
		mustExecute(t, e, BB, Raise, 6)
		mustExecute(t, e, UTG, AllIn, 0) // raise to 8, below the min of 10

		assert.Equal(t, 8, e.CurrentBet())
		assert.Equal(t, 2, e.LastRaiseAmount())
		assert.Equal(t, SB, e.ActionOn())
		assert.False(t, mustPlayer(t, e, BB).HasActed)
		requireConservation(t, e)
	})
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) *Engine
		pos    Position
		typ    ActionType
		amount int
		want   string
	}{
		{
			name:  "inactive position",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG1, typ: Fold,
			want: "UTG+1 is not active in current table setup",
		},
		{
			name:  "out of turn",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   MP, typ: Fold,
			want: "Not MP's turn to act. Current action on UTG",
		},
		{
			name:  "check facing bet",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG, typ: Check,
			want: "Cannot check. Must call $2 or fold",
		},
		{
			name:  "call wrong amount",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG, typ: Call, amount: 3,
			want: "Must call exactly $2",
		},
		{
			name:  "bet into a bet",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG, typ: Bet, amount: 6,
			want: "Cannot bet when there is already a bet. Use raise instead",
		},
		{
			name:  "raise not above current bet",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG, typ: Raise, amount: 2,
			want: "Raise must be higher than current bet of $2",
		},
		{
			name:  "posting is not discretionary",
			setup: func(t *testing.T) *Engine { return NewEngine(sixMaxConfig()) },
			pos:   UTG, typ: PostBlind, amount: 2,
			want: "Invalid action type",
		},
		{
			name: "call with nothing to call",
			setup: func(t *testing.T) *Engine {
				return closedPreflopThreeHanded(t, threeHandedConfig())
			},
			pos: SB, typ: Call, amount: 0,
			want: "Cannot call when there is no bet. Use check instead",
		},
		{
			name: "raise with no bet",
			setup: func(t *testing.T) *Engine {
				return closedPreflopThreeHanded(t, threeHandedConfig())
			},
			pos: SB, typ: Raise, amount: 10,
			want: "Cannot raise when there is no bet. Use bet instead",
		},
		{
			name: "zero bet",
			setup: func(t *testing.T) *Engine {
				return closedPreflopThreeHanded(t, threeHandedConfig())
			},
			pos: SB, typ: Bet, amount: 0,
			want: "Bet amount must be greater than 0",
		},
		{
			name: "bet larger than stack",
			setup: func(t *testing.T) *Engine {
				return closedPreflopThreeHanded(t, threeHandedConfig())
			},
			pos: SB, typ: Bet, amount: 500,
			want: "Insufficient stack. Has $98, trying to bet $500",
		},
		{
			name: "street closed",
			setup: func(t *testing.T) *Engine {
				e := NewEngine(threeHandedConfig())
				mustExecute(t, e, UTG, Fold, 0)
				mustExecute(t, e, SB, Fold, 0)
				mustExecute(t, e, BB, Check, 0)
				return e
			},
			pos: BB, typ: Check,
			want: "Action is closed for this street",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.setup(t)
			before := e.State()

			err := e.Validate(tt.pos, tt.typ, tt.amount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIllegalAction))
			assert.Contains(t, Reasons(err), tt.want)

			err = e.Execute(tt.pos, tt.typ, tt.amount)
			assert.Contains(t, Reasons(err), tt.want)
			assert.Equal(t, before, e.State())
		})
	}
}

func TestValidate_ActionError(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	err := e.Validate(UTG, Raise, 500)
	assert.Equal(t, []string{"Insufficient stack. Has $100, needs $500"}, Reasons(err))

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, UTG, actionErr.Position)
	assert.Equal(t, Raise, actionErr.Type)
	assert.Equal(t, "illegal raise by UTG: Insufficient stack. Has $100, needs $500", err.Error())
}

func TestFoldedPlayerCannotAct(t *testing.T) {
	e := NewEngine(threeHandedConfig())
	mustExecute(t, e, UTG, Raise, 6)
	mustExecute(t, e, SB, Fold, 0)
	mustExecute(t, e, BB, Raise, 12)

	// UTG calls; folded SB is skipped and the street closes
	mustExecute(t, e, UTG, Call, 6)
	assert.True(t, e.Closed())
	assert.True(t, mustPlayer(t, e, SB).Folded)

	require.NoError(t, e.TransitionTo(Flop))
	assert.Equal(t, BB, e.ActionOn())
	err := e.Validate(SB, Check, 0)
	assert.Equal(t, []string{"Not SB's turn to act. Current action on BB"}, Reasons(err))
}

func TestForceEnd(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	mustExecute(t, e, UTG, Raise, 6)

	assert.True(t, e.ForceEnd())
	assert.True(t, e.Closed())
	assert.Equal(t, Position(""), e.ActionOn())
	assert.Empty(t, e.State().Available)

	assert.False(t, e.ForceEnd(), "second force end is a no-op")
	err := e.Execute(MP, Fold, 0)
	assert.Equal(t, []string{"Action is closed for this street"}, Reasons(err))
}

func TestActionTimestampsUseClock(t *testing.T) {
	clock := quartz.NewMock(t)
	start := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	clock.Set(start)

	e := NewEngine(sixMaxConfig(), WithClock(clock))
	clock.Advance(5 * time.Second)
	mustExecute(t, e, UTG, Fold, 0)

	actions := e.Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, start, actions[0].Timestamp)
	assert.Equal(t, start.Add(5*time.Second), actions[2].Timestamp)
}

func TestLastActionIsTracked(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	mustExecute(t, e, UTG, Raise, 6)

	utg := mustPlayer(t, e, UTG)
	require.NotNil(t, utg.LastAction)
	assert.Equal(t, Raise, utg.LastAction.Type)

	// snapshots are copies
	utg.LastAction.RaiseTo = 999
	assert.Equal(t, 6, mustPlayer(t, e, UTG).LastAction.RaiseTo)
}

func TestApplyUsesRaiseTo(t *testing.T) {
	e := NewEngine(sixMaxConfig())
	require.NoError(t, e.Apply(RaiseToAction(UTG, 6)))
	require.NoError(t, e.Apply(CallAction(MP, 6)))
	assert.Equal(t, 15, e.Pot())
}
