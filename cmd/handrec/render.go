package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/handrecorder/internal/analysis"
	"github.com/lox/handrecorder/internal/deck"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
	"github.com/lox/handrecorder/internal/statistics"
	"github.com/lox/handrecorder/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	streetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	heroStyle = lipgloss.NewStyle().Bold(true)
)

func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return infoStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackCardStyle
		if c.IsRed() {
			style = redCardStyle
		}
		parts[i] = style.Render(c.Symbol())
	}
	return strings.Join(parts, " ")
}

// renderState prints the street being recorded, the players and what the
// player to act may do
func renderState(w io.Writer, rec *hand.Record, st game.GameState) {
	title := fmt.Sprintf("%s  pot $%d", strings.ToUpper(st.Street.String()), st.Pot)
	fmt.Fprintln(w, headerStyle.Render(title))
	if cards := rec.Board.Cards(); len(cards) > 0 {
		fmt.Fprintln(w, "Board: "+renderCards(cards))
	}

	for _, p := range st.Players {
		line := fmt.Sprintf("%-6s $%-5d in $%-5d", p.Position, p.Stack, p.Contributed)
		switch {
		case p.Folded:
			line += " folded"
		case p.AllIn:
			line += " all-in"
		}
		if p.Position == st.ActionOn {
			line = "> " + line
		} else {
			line = "  " + line
		}
		if p.Position == rec.HeroPosition {
			line = heroStyle.Render(line) + " " + renderCards(rec.HeroCards)
		}
		fmt.Fprintln(w, line)
	}

	formatter := game.NewActionFormatter(game.DefaultFormatting)
	for _, a := range rec.StreetActions(st.Street) {
		fmt.Fprintln(w, infoStyle.Render("  "+formatter.Format(a)))
	}

	switch {
	case st.Closed:
		fmt.Fprintln(w, streetStyle.Render("Betting closed on the "+st.Street.String()))
	case st.ActionOn != "":
		fmt.Fprintln(w, actionsStyle.Render(fmt.Sprintf("%s to act: %s", st.ActionOn, menu(st.Available))))
	}
}

func menu(actions []game.LegalAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		switch a.Type {
		case game.Call:
			parts = append(parts, fmt.Sprintf("call $%d", a.Amount))
		case game.Bet:
			parts = append(parts, fmt.Sprintf("bet $%d-$%d", a.Min, a.Max))
		case game.Raise:
			parts = append(parts, fmt.Sprintf("raise to $%d-$%d", a.MinRaiseTo, a.MaxRaiseTo))
		case game.AllIn:
			parts = append(parts, fmt.Sprintf("all-in $%d", a.Amount))
		default:
			parts = append(parts, a.Type.String())
		}
	}
	return strings.Join(parts, ", ")
}

func renderReasons(w io.Writer, reasons []string) {
	for _, reason := range reasons {
		fmt.Fprintln(w, errorStyle.Render("✗ "+reason))
	}
}

// renderHand prints the record header and the full action log by street
func renderHand(w io.Writer, rec *hand.Record) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Hand %s", rec.ID)))
	fmt.Fprintf(w, "%s %s %s\n", rec.StakeLevel, rec.GameType, strings.TrimSpace(rec.Casino+" "+rec.Location))
	fmt.Fprintln(w, infoStyle.Render("Recorded "+rec.Created.Format("2006-01-02 15:04")))
	if rec.HeroPosition != "" {
		fmt.Fprintf(w, "Hero %s %s\n", rec.HeroPosition, renderCards(rec.HeroCards))
	}
	if rec.VillainPosition != "" {
		fmt.Fprintf(w, "Villain %s %s %s\n", rec.VillainPosition, renderCards(rec.VillainCards), rec.VillainType)
	}

	formatter := game.NewActionFormatter(game.DefaultFormatting)
	for street, actions := range groupedStreets(rec.Actions) {
		line := strings.ToUpper(street.String())
		if cards := rec.Board.Street(street); len(cards) > 0 {
			line += " " + renderCards(cards)
		}
		fmt.Fprintln(w, streetStyle.Render(line))
		fmt.Fprintln(w, indent(formatter.FormatStreet(actions)))
	}

	if len(rec.Tags) > 0 {
		fmt.Fprintln(w, "Tags: "+strings.Join(rec.Tags, ", "))
	}
	if rec.GeneralNotes != "" {
		fmt.Fprintln(w, "Notes: "+rec.GeneralNotes)
	}
}

// groupedStreets yields the streets that have actions, in dealing order
func groupedStreets(actions []game.Action) func(yield func(game.Street, []game.Action) bool) {
	byStreet := analysis.GroupByStreet(actions)
	return func(yield func(game.Street, []game.Action) bool) {
		for _, s := range game.Streets {
			if len(byStreet[s]) == 0 {
				continue
			}
			if !yield(s, byStreet[s]) {
				return
			}
		}
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

// renderSummary prints the analysis overview of a hand
func renderSummary(w io.Writer, rec *hand.Record) {
	stats := analysis.HandStats(rec)

	fmt.Fprintln(w, headerStyle.Render("Hand Summary"))
	fmt.Fprintf(w, "Total pot:         $%d\n", stats.TotalPot)
	if rake := rec.Rake.Taken(stats.TotalPot); rake > 0 {
		fmt.Fprintf(w, "Rake:              $%d\n", rake)
	}
	fmt.Fprintf(w, "Hero contribution: $%d\n", stats.HeroContribution)
	if rec.IsComplete() {
		fmt.Fprintf(w, "Result:            %s %+d (%+.1f BB)\n", rec.Result, stats.NetResult, stats.BBWonLost)
	}
	if stats.EquityEstimate > 0 {
		fmt.Fprintf(w, "Equity estimate:   %.0f%%\n", stats.EquityEstimate)
	}

	for _, step := range analysis.Progression(rec) {
		fmt.Fprintln(w, streetStyle.Render(step.Street.String())+" "+step.Description)
	}
	if rec.SummaryNotes != "" {
		fmt.Fprintln(w, "Summary: "+rec.SummaryNotes)
	}
	if rec.LessonsLearned != "" {
		fmt.Fprintln(w, "Lessons: "+rec.LessonsLearned)
	}
}

// inferAmount works out hero's net from the pot after rake
func inferAmount(rec *hand.Record, result hand.Result) int {
	pot := rec.PotSize - rec.Rake.Taken(rec.PotSize)
	return analysis.InferAmount(result, pot, analysis.HeroContribution(rec.Actions, rec.HeroPosition))
}

func renderList(w io.Writer, hands []store.Summary) {
	if len(hands) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No hands recorded"))
		return
	}
	for _, h := range hands {
		status := "in progress"
		if h.Complete {
			status = fmt.Sprintf("%s %+d", h.Result, h.AmountWon)
		}
		hero := string(h.Hero)
		if hero == "" {
			hero = "-"
		}
		fmt.Fprintf(w, "%s  %s  %-8s %-4s %-8s pot $%-5d %s\n",
			h.ID, h.Created.Format("2006-01-02 15:04"), h.StakeLevel, hero, h.Street, h.PotSize, status)
	}
}

func renderStats(w io.Writer, s *statistics.Statistics) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Results over %d hands", s.Hands)))
	if s.Hands == 0 {
		fmt.Fprintln(w, infoStyle.Render("No completed hands"))
		return
	}
	low, high := s.ConfidenceInterval95()
	fmt.Fprintf(w, "Won/lost/chopped:  %d/%d/%d (%.0f%% won)\n", s.Won, s.Lost, s.Chopped, s.WinRate()*100)
	fmt.Fprintf(w, "Mean:              %+.2f BB/hand (%+.1f BB/100)\n", s.Mean(), s.BBPer100())
	fmt.Fprintf(w, "95%% interval:      %+.2f to %+.2f BB/hand\n", low, high)
	fmt.Fprintf(w, "Median:            %+.2f BB\n", s.Median())
	fmt.Fprintf(w, "Showdown:          %+.1f BB (%d wins)\n", s.ShowdownBB, s.ShowdownWins)
	fmt.Fprintf(w, "Non-showdown:      %+.1f BB (%d wins)\n", s.NonShowdownBB, s.NonShowdownWins)
	fmt.Fprintf(w, "Largest pot:       $%d (%.0f BB), %d pots over 50 BB\n", s.MaxPotChips, s.MaxPotBB, s.BigPots)

	for _, pos := range game.CanonicalOrder {
		ps, ok := s.Positions[pos]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-6s %3d hands %+7.2f BB/hand\n", pos, ps.Hands, ps.Mean())
	}
}
