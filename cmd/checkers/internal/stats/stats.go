// Package stats shows the stored game statistics.
package stats

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/storage"
)

// CmdStats represents the stats command.
var CmdStats = &cobra.Command{
	Use:   "stats",
	Short: "Show game statistics",
	Long:  "Show the win, loss and draw record kept across sessions.",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, _ []string) error {
	env, err := app.Setup(&base.Flags, true)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.Storage == nil {
		return errors.New("storage is disabled")
	}
	return Show(cmd.OutOrStdout(), env.Storage)
}

// Show prints the statistics held by s.
func Show(w io.Writer, s *storage.Storage) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	base.Heading(w, "%d games played", stats.GamesPlayed)
	fmt.Fprintf(w, "record: %d won, %d lost, %d drawn (%.0f%%)\n",
		stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
	fmt.Fprintf(w, "streak: %d, longest %d\n", stats.CurrentStreak, stats.LongestWinStrk)
	if stats.GamesPlayed > 0 {
		fmt.Fprintf(w, "average length: %d plies, total time %s\n",
			stats.TotalPlies/stats.GamesPlayed, stats.TotalPlayTime.Round(time.Second))
	}
	printCounts(w, "wins by depth", stats.WinsByDepth)
	printCounts(w, "wins by color", stats.WinsByColor)
	return nil
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := lo.Keys(counts)
	slices.Sort(keys)
	parts := lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s: %d", k, counts[k])
	})
	fmt.Fprintf(w, "%s: %s\n", title, strings.Join(parts, ", "))
}
