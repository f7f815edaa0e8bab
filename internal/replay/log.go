package replay

import (
	"fmt"
	"slices"

	"github.com/lox/handrecorder/internal/game"
)

// Log is the ordered action history of one hand, kept as one array per
// street. Preflop holds the forced posts too, exactly as the engine logged
// them; replay skips those because construction re-posts them.
type Log struct {
	streets [len(streetSlots)][]game.Action
}

var streetSlots = [...]game.Street{game.Preflop, game.Flop, game.Turn, game.River}

// NewLog builds a log from entries in execution order, filing each one under
// its Street tag. It fails on the first entry tagged with no betting round.
func NewLog(actions ...game.Action) (*Log, error) {
	l := &Log{}
	for i, a := range actions {
		if err := l.Append(a); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return l, nil
}

// Append files a at the end of its street's array
func (l *Log) Append(a game.Action) error {
	if !a.Street.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStreet, a.Street)
	}
	l.streets[a.Street] = append(l.streets[a.Street], a)
	return nil
}

func (l *Log) entries(s game.Street) []game.Action {
	if !s.Valid() {
		return nil
	}
	return l.streets[s]
}

// Street returns a copy of every entry logged on s, forced posts included
func (l *Log) Street(s game.Street) []game.Action {
	return slices.Clone(l.entries(s))
}

// Voluntary returns the entries of s that replay must execute
func (l *Log) Voluntary(s game.Street) []game.Action {
	var out []game.Action
	for _, a := range l.entries(s) {
		if !a.Type.Forced() {
			out = append(out, a)
		}
	}
	return out
}

// HasVoluntary reports whether s has anything that can be undone
func (l *Log) HasVoluntary(s game.Street) bool {
	for _, a := range l.entries(s) {
		if !a.Type.Forced() {
			return true
		}
	}
	return false
}

// TruncateLast drops the last discretionary entry of s. Forced posts are
// never removed, so it reports false once only those remain.
func (l *Log) TruncateLast(s game.Street) bool {
	entries := l.entries(s)
	last := len(entries) - 1
	if last < 0 || entries[last].Type.Forced() {
		return false
	}
	l.streets[s] = entries[:last]
	return true
}

// Clear drops every discretionary entry of s and keeps the forced posts
func (l *Log) Clear(s game.Street) {
	if !s.Valid() {
		return
	}
	l.streets[s] = slices.DeleteFunc(l.streets[s], func(a game.Action) bool {
		return !a.Type.Forced()
	})
}

// TruncateAfter drops every entry logged on the streets after s, reporting
// whether there were any
func (l *Log) TruncateAfter(s game.Street) bool {
	dropped := false
	for _, later := range streetSlots {
		if later > s && len(l.streets[later]) > 0 {
			l.streets[later] = nil
			dropped = true
		}
	}
	return dropped
}

// All returns every entry in street order
func (l *Log) All() []game.Action {
	var out []game.Action
	for _, entries := range l.streets {
		out = append(out, entries...)
	}
	return out
}

// Len counts every entry, forced posts included
func (l *Log) Len() int {
	n := 0
	for _, entries := range l.streets {
		n += len(entries)
	}
	return n
}

// Clone returns a deep copy that can be truncated without touching l
func (l *Log) Clone() *Log {
	out := &Log{}
	for i, entries := range l.streets {
		out.streets[i] = slices.Clone(entries)
	}
	return out
}
