// Package analyze searches a single position.
package analyze

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/console"
	"github.com/hailam/checkersplay/internal/engine"
)

var (
	layout string
	toMove string
)

// CmdAnalyze represents the analyze command.
var CmdAnalyze = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate a position and search it",
	Long:  "Evaluate a position and search it at every depth from 1 to the configured search depth.",
	RunE:  run,
}

func init() {
	CmdAnalyze.Flags().StringVar(&layout, "layout", "", "position as 8 rows separated by / (default: starting position)")
	CmdAnalyze.Flags().StringVar(&toMove, "to-move", "w", "side to move: w or b")
}

func run(cmd *cobra.Command, _ []string) error {
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
	eng := env.Engine()
	view := console.NewRenderer(!color.NoColor)
	moves := b.GenerateMoves(c, eng.Rules())

	fmt.Fprint(out, view.Board(b))
	fmt.Fprintf(out, "%s to move, %d legal moves: %s\n", view.Side(c), len(moves), view.Moves(moves))
	fmt.Fprintf(out, "static eval: %s\n", engine.ScoreToString(eng.Evaluate(b, c, c)))

	for depth := 1; depth <= eng.Options().Depth; depth++ {
		res, err := eng.BestMoveAt(b, c, depth)
		if errors.Is(err, engine.ErrGameOver) {
			base.Bad(out, "%s has no moves", c)
			return nil
		}
		if err != nil {
			return err
		}
		line := fmt.Sprintf("depth %2d  %-12s score %-16s %8d nodes  %v",
			depth, res.Move, engine.ScoreToString(res.Score), res.Nodes, res.Time)
		if res.Fallback {
			base.Bad(out, "%s  (no move avoids a loss)", line)
		} else {
			base.Good(out, "%s", line)
		}
	}
	return nil
}
