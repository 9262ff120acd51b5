// Package perft counts move paths for move generator testing.
package perft

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
)

var (
	layout string
	toMove string
)

// CmdPerft represents the perft command.
var CmdPerft = &cobra.Command{
	Use:   "perft <depth>",
	Short: "Count move paths to a fixed depth",
	Long:  "Count move paths to a fixed depth, split by root move. The root moves are counted in parallel.",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	CmdPerft.Flags().StringVar(&layout, "layout", "", "position as 8 rows separated by / (default: starting position)")
	CmdPerft.Flags().StringVar(&toMove, "to-move", "w", "side to move: w or b")
}

func run(cmd *cobra.Command, args []string) error {
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return fmt.Errorf("depth must be a positive number, got %q", args[0])
	}
	b, c, err := base.Position(layout, toMove)
	if err != nil {
		return err
	}

	env, err := app.Setup(&base.Flags, false)
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	start := time.Now()
	entries, err := env.Engine().PerftDivide(cmd.Context(), b, c, depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var nodes uint64
	for _, e := range entries {
		fmt.Fprintf(out, "%-16s %d\n", e.Move, e.Nodes)
		nodes += e.Nodes
	}
	base.Heading(out, "perft(%d) = %d", depth, nodes)
	fmt.Fprintf(out, "%d root moves, %v", len(entries), elapsed.Round(time.Microsecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(out, ", %.0f nodes/s", float64(nodes)/secs)
	}
	fmt.Fprintln(out)
	return nil
}
