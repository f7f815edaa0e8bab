package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	New       NewCmd           `cmd:"" help:"Start recording a new hand"`
	Act       ActCmd           `cmd:"" help:"Record a betting action on the current street"`
	Undo      UndoCmd          `cmd:"" help:"Remove the last action of the current street"`
	Clear     ClearCmd         `cmd:"" help:"Remove every action of the current street"`
	EndStreet EndStreetCmd     `cmd:"end-street" help:"Close betting on the current street"`
	Next      NextCmd          `cmd:"" help:"Move on to the next street"`
	Street    StreetCmd        `cmd:"" help:"Go back to an earlier street"`
	Board     BoardCmd         `cmd:"" help:"Set the board cards for a street"`
	Seat      SeatCmd          `cmd:"" help:"Set hero or villain position and cards"`
	Tag       TagCmd           `cmd:"" help:"Replace the tags on a hand"`
	Summary   SummaryCmd       `cmd:"" help:"Enter the result and show the hand summary"`
	Show      ShowCmd          `cmd:"" help:"Show a hand"`
	List      ListCmd          `cmd:"" help:"List recorded hands"`
	Stats     StatsCmd         `cmd:"" help:"Show results over every completed hand"`
	Delete    DeleteCmd        `cmd:"" help:"Delete a recorded hand"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handrec"),
		kong.Description("Record and annotate live no-limit hold'em hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
