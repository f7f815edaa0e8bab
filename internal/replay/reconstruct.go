package replay

import (
	"github.com/lox/handrecorder/internal/game"
)

// Reconstruct builds a fresh engine from cfg and replays log up to and
// including target. Construction posts the blinds, so forced entries in the
// log are skipped; every other entry is applied in order, with one street
// transition at each boundary.
//
// A rejected entry aborts the replay. No engine is returned in that case,
// only a *ReconstructionError carrying the partial state. A nil log replays
// as an empty one.
func Reconstruct(cfg game.TableConfig, log *Log, target game.Street, opts ...game.EngineOption) (*game.Engine, error) {
	if log == nil {
		log = &Log{}
	}
	e := game.NewEngine(cfg, opts...)

	for _, street := range game.Streets {
		if street > target {
			break
		}
		if street != game.Preflop {
			if err := e.TransitionTo(street); err != nil {
				return nil, &ReconstructionError{Street: street, Index: -1, State: e.State(), Err: err}
			}
		}
		for i, a := range log.Voluntary(street) {
			if err := e.Apply(a); err != nil {
				return nil, &ReconstructionError{Street: street, Index: i, Action: a, State: e.State(), Err: err}
			}
		}
	}

	return e, nil
}
