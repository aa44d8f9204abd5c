package main

import (
	"os"

	"github.com/akasprzok/graf/internal/commands"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("graf"),
		kong.Description("Plot Grafana panels and Prometheus queries as ANSI text, optionally following them in real time."),
		kong.UsageOnError(),
	)
	// Call the Run() method of the selected parsed command.
	err := ctx.Run(&commands.Context{
		Timeout: commands.Cli.Timeout,
		Logger:  commands.NewLogger(commands.Cli.Verbose),
		Stdout:  os.Stdout,
		NoColor: commands.Cli.NoColor,
	})
	ctx.FatalIfErrorf(err)
}
