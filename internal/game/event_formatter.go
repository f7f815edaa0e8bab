package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how logged actions are rendered
type FormattingOptions struct {
	ShowPosition bool // prefix each line with the acting position
	ShowAllIn    bool // mark actions that put the player all-in
}

// DefaultFormatting is what FormatAction uses
var DefaultFormatting = FormattingOptions{ShowPosition: true, ShowAllIn: true}

// ActionFormatter renders log entries as human readable lines for summaries
// and export collaborators.
type ActionFormatter struct {
	opts FormattingOptions
}

// NewActionFormatter creates a formatter with the given options
func NewActionFormatter(opts FormattingOptions) *ActionFormatter {
	return &ActionFormatter{opts: opts}
}

// FormatAction renders one action with the default options, e.g. "UTG raises to $6"
func FormatAction(a Action) string {
	return NewActionFormatter(DefaultFormatting).Format(a)
}

// Format renders one action
func (f *ActionFormatter) Format(a Action) string {
	var text string
	switch a.Type {
	case PostBlind:
		text = fmt.Sprintf("posts blind $%d", a.Amount)
	case PostStraddle:
		text = fmt.Sprintf("posts straddle $%d", a.Amount)
	case Fold:
		text = "folds"
	case Check:
		text = "checks"
	case Call:
		text = fmt.Sprintf("calls $%d", a.Amount)
	case Bet:
		text = fmt.Sprintf("bets $%d", a.Amount)
	case Raise:
		text = fmt.Sprintf("raises to $%d", a.RaiseTo)
	case AllIn:
		text = fmt.Sprintf("goes all-in for $%d", a.Amount)
	default:
		text = a.Type.String()
	}

	if f.opts.ShowAllIn && a.AllIn && a.Type != AllIn && !a.Type.Forced() {
		text += " and is all-in"
	}
	if f.opts.ShowPosition {
		text = fmt.Sprintf("%s %s", a.Position, text)
	}
	return text
}

// FormatStreet renders every action of a street, one per line
func (f *ActionFormatter) FormatStreet(actions []Action) string {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		lines = append(lines, f.Format(a))
	}
	return strings.Join(lines, "\n")
}
