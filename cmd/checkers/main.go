// Command checkers is the terminal front end: interactive games, engine
// self-play, perft and position analysis.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/analyze"
	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/cmd/checkers/internal/configcmd"
	"github.com/hailam/checkersplay/cmd/checkers/internal/enginecmd"
	"github.com/hailam/checkersplay/cmd/checkers/internal/perft"
	"github.com/hailam/checkersplay/cmd/checkers/internal/play"
	"github.com/hailam/checkersplay/cmd/checkers/internal/selfplay"
	"github.com/hailam/checkersplay/cmd/checkers/internal/stats"
)

// release is the version of the tool.
const release = "v0.3.0"

var rootCmd = &cobra.Command{
	Use:           "checkers",
	Short:         "Checkers: play, test and analyze",
	Long:          "Checkers: play against the alpha-beta engine, let it play itself, count move paths, analyze positions and review statistics.",
	Version:       release,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	base.Flags.Register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(play.CmdPlay)
	rootCmd.AddCommand(selfplay.CmdSelfPlay)
	rootCmd.AddCommand(perft.CmdPerft)
	rootCmd.AddCommand(analyze.CmdAnalyze)
	rootCmd.AddCommand(stats.CmdStats)
	rootCmd.AddCommand(enginecmd.CmdEngine)
	rootCmd.AddCommand(configcmd.CmdConfig)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
