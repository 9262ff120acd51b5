// Package selfplay lets the engine play games against itself.
package selfplay

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
	"github.com/hailam/checkersplay/internal/console"
	"github.com/hailam/checkersplay/internal/game"
)

var (
	games   int
	jobs    int
	verbose bool
)

// CmdSelfPlay represents the selfplay command.
var CmdSelfPlay = &cobra.Command{
	Use:   "selfplay",
	Short: "Let the engine play against itself",
	Long:  "Let the engine play against itself and print the tally. Games run in parallel, one engine per game.",
	RunE:  run,
}

func init() {
	CmdSelfPlay.Flags().IntVarP(&games, "games", "n", 10, "number of games")
	CmdSelfPlay.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "games played at the same time")
	CmdSelfPlay.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every move (forces one job)")
}

// Tally counts game outcomes.
type Tally struct {
	White, Black, Draws int
	Plies               int
}

func (t *Tally) add(o *game.Outcome, plies int) {
	switch o.Winner {
	case board.White:
		t.White++
	case board.Black:
		t.Black++
	default:
		t.Draws++
	}
	t.Plies += plies
}

func run(cmd *cobra.Command, _ []string) error {
	env, err := app.Setup(&base.Flags, true)
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	start := time.Now()
	tally, err := Play(cmd.Context(), env, games, jobs, verbose, out)
	if err != nil {
		return err
	}

	base.Heading(out, "%d games in %v", games, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "White wins: %d\nBlack wins: %d\nDraws:      %d\n", tally.White, tally.Black, tally.Draws)
	if games > 0 {
		fmt.Fprintf(out, "Average length: %.1f plies\n", float64(tally.Plies)/float64(games))
	}
	return nil
}

// Play runs n engine games with up to jobs of them at once and returns the
// tally. Moves are written to out only when verbose is set.
func Play(ctx context.Context, env *app.Env, n, jobs int, verbose bool, out io.Writer) (Tally, error) {
	if verbose {
		jobs = 1
	}
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu    sync.Mutex
		tally Tally
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			w := io.Discard
			if verbose {
				w = out
			}
			opts := console.Options{
				Mode:     config.EngineVsEngine,
				MaxPlies: env.Config.Game.MaxPlies,
			}
			if env.Storage != nil {
				opts.Recorder = env.Storage
			}

			s := console.New(env.Engine(), opts, w, env.Log.Logger)
			outcome, err := s.Play(ctx)
			if err != nil {
				return err
			}
			env.Log.Info("selfplay game finished",
				zap.Int("game", i+1),
				zap.Stringer("winner", outcome.Winner),
				zap.String("reason", outcome.Reason),
				zap.Int("plies", s.Ply()),
			)

			mu.Lock()
			tally.add(outcome, s.Ply())
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}
	return tally, nil
}
