// Package play runs an interactive console game.
package play

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/console"
)

var plain bool

// CmdPlay represents the play command.
var CmdPlay = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long:  "Play a game in the terminal. Type help at the prompt for the list of commands.",
	RunE:  run,
}

func init() {
	CmdPlay.Flags().BoolVar(&plain, "plain", false, "disable colors")
}

func run(cmd *cobra.Command, _ []string) error {
	env, err := app.Setup(&base.Flags, true)
	if err != nil {
		return err
	}
	defer env.Close()

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	opts := console.Options{
		Mode:       env.Mode(),
		HumanColor: env.HumanColor(),
		MaxPlies:   env.Config.Game.MaxPlies,
		Color:      !plain && isatty.IsTerminal(os.Stdout.Fd()),
		Prompt:     interactive,
	}
	if env.Storage != nil {
		opts.Recorder = env.Storage
	}

	session := console.New(env.Engine(), opts, cmd.OutOrStdout(), env.Log.Logger)
	return session.Run(cmd.Context(), cmd.InOrStdin())
}
