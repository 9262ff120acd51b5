// Package enginecmd runs the engine behind the text protocol on stdin and
// stdout.
package enginecmd

import (
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/protocol"
)

// CmdEngine represents the engine command.
var CmdEngine = &cobra.Command{
	Use:   "engine",
	Short: "Speak the engine protocol on stdin and stdout",
	Long:  "Run the engine for match runners and other front ends. Send uci for the list of options; log records go to stderr.",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, _ []string) error {
	env, err := app.Setup(&base.Flags, false)
	if err != nil {
		return err
	}
	defer env.Close()

	h := protocol.New(env.Engine(), cmd.OutOrStdout(), env.Log.Logger)
	return h.Run(cmd.Context(), cmd.InOrStdin())
}
