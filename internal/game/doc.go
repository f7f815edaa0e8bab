// Package game implements the single-street betting engine used to record
// no-limit Texas Hold'em hands.
//
// The main type is Engine, which tracks blinds and straddle posting, whose
// turn it is, which actions are legal, and pot and stack accounting for one
// street at a time.
//
// # Basic Usage
//
//	cfg := game.TableConfig{
//	    SmallBlind:      1,
//	    BigBlind:        2,
//	    EffectiveStack:  100,
//	    ActivePositions: game.Positions6Max,
//	}
//	e := game.NewEngine(cfg)            // blinds are posted here
//	err := e.Execute(game.UTG, game.Raise, 6) // raise to 6
//	if game.Reasons(err) != nil {
//	    // show the reasons, engine state is unchanged
//	}
//	st := e.State()                      // pot, action pointer, legal menu
//
// # Streets
//
// Engines are not kept alive across streets. Callers rebuild one from the
// config and replay the action log, applying TransitionTo at each street
// boundary. See package replay.
//
// # Deterministic Testing
//
// Inject a quartz mock clock so action timestamps are reproducible:
//
//	clock := quartz.NewMock(t)
//	e := game.NewEngine(cfg, game.WithClock(clock))
package game
