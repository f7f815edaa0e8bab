// Package statistics aggregates the results of completed hands into win
// rates measured in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
)

// bigPotBB is the pot size in big blinds from which a hand counts as a big pot
const bigPotBB = 50

// PositionStats tracks results for hero in one position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Mean returns the average result in big blinds
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// Statistics accumulates completed hands. Incomplete hands are skipped.
type Statistics struct {
	Hands   int
	Won     int
	Lost    int
	Chopped int
	SumBB   float64
	SumBB2  float64   // sum of squares for variance
	Values  []float64 // every result, for median and percentiles

	// Showdown means villain's cards were recorded or the hand was tagged
	// Showdown. Both buckets hold wins and losses.
	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions map[game.Position]*PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int     // pots of at least 50 big blinds
	BigPotsBB   float64 // hero's result in those pots
}

// New returns empty statistics
func New() *Statistics {
	return &Statistics{Positions: make(map[game.Position]*PositionStats)}
}

// NetBB converts a record's net result to big blinds
func NetBB(rec *hand.Record) float64 {
	bb := rec.Table.BigBlind
	if bb <= 0 {
		return 0
	}
	return float64(rec.AmountWon) / float64(bb)
}

// WentToShowdown reports whether the record shows the hand reached showdown
func WentToShowdown(rec *hand.Record) bool {
	return len(rec.VillainCards) > 0 || rec.HasTag("Showdown")
}

// Add incorporates a hand. It reports false for a hand without a summary.
func (s *Statistics) Add(rec *hand.Record) bool {
	if !rec.IsComplete() {
		return false
	}
	if s.Positions == nil {
		s.Positions = make(map[game.Position]*PositionStats)
	}

	netBB := NetBB(rec)
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	switch rec.Result {
	case hand.ResultWon:
		s.Won++
	case hand.ResultLost:
		s.Lost++
	case hand.ResultChopped:
		s.Chopped++
	}

	showdown := WentToShowdown(rec)
	if netBB > 0 {
		if showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if showdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}

	if rec.HeroPosition != "" {
		ps, ok := s.Positions[rec.HeroPosition]
		if !ok {
			ps = &PositionStats{}
			s.Positions[rec.HeroPosition] = ps
		}
		ps.Hands++
		ps.SumBB += netBB
		ps.SumBB2 += netBB * netBB
	}

	if rec.Table.BigBlind > 0 {
		potBB := float64(rec.PotSize) / float64(rec.Table.BigBlind)
		if potBB > s.MaxPotBB {
			s.MaxPotChips = rec.PotSize
			s.MaxPotBB = potBB
		}
		if potBB >= bigPotBB {
			s.BigPots++
			s.BigPotsBB += netBB
		}
	}
	return true
}

// Mean returns the average result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 returns the win rate in big blinds per hundred hands
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of hands won, chops excluded
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Hands)
}

// Median returns the median result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the result at p, between 0 and 1, interpolating
// between neighbours
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns hero's average result from pos
func (s *Statistics) PositionMean(pos game.Position) float64 {
	ps, ok := s.Positions[pos]
	if !ok {
		return 0
	}
	return ps.Mean()
}

// IsLedgerBalanced checks the showdown buckets add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if results := s.Won + s.Lost + s.Chopped; results != s.Hands {
		return fmt.Errorf("results total (%d) does not match hands count (%d)", results, s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	positioned := 0
	for _, ps := range s.Positions {
		positioned += ps.Hands
	}
	if positioned > s.Hands {
		return fmt.Errorf("position hands total (%d) exceeds total hands (%d)", positioned, s.Hands)
	}
	return nil
}
