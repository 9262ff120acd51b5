package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		assert.Equal(t, "Player", prefs.Username)
		assert.Equal(t, "human-vs-engine", prefs.GameMode)
		assert.Equal(t, "white", prefs.HumanColor)
		assert.Equal(t, 3, prefs.Depth)
		assert.True(t, prefs.Randomize)
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		assert.Zero(t, stats.GamesPlayed)
		assert.Zero(t, stats.GetWinRate())
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 12,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		assert.Equal(t, 50.0, stats.GetWinRate())
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTemp(t)

	first, err := s.IsFirstLaunch()
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, s.MarkFirstLaunchComplete())
	first, err = s.IsFirstLaunch()
	require.NoError(t, err)
	assert.False(t, first)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTemp(t)

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences().Depth, prefs.Depth)

	prefs.Depth = 6
	prefs.RootCutoff = "rescan"
	prefs.HumanColor = "black"
	prefs.FlipBoard = true
	require.NoError(t, s.SavePreferences(prefs))

	got, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 6, got.Depth)
	assert.Equal(t, "rescan", got.RootCutoff)
	assert.Equal(t, "black", got.HumanColor)
	assert.True(t, got.FlipBoard)
	assert.False(t, got.LastPlayed.IsZero())
}

func TestRecordGame(t *testing.T) {
	s := openTemp(t)

	results := []GameResult{
		{Mode: "human-vs-engine", HasHuman: true, HumanColor: board.White, Winner: board.White, Depth: 3, Plies: 41, Duration: time.Minute},
		{Mode: "human-vs-engine", HasHuman: true, HumanColor: board.White, Winner: board.White, Depth: 3, Plies: 37},
		{Mode: "human-vs-engine", HasHuman: true, HumanColor: board.Black, Winner: board.White, Depth: 5, Plies: 50},
		{Mode: "engine-vs-engine", Winner: board.NoColor, Depth: 3, Plies: 200},
		{Mode: "engine-vs-engine", Winner: board.Black, Depth: 3, Plies: 90},
	}
	for _, r := range results {
		require.NoError(t, s.RecordGame(r))
	}

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.GamesPlayed)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 2, stats.LongestWinStrk)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.WinsByMode["human-vs-engine"])
	assert.Equal(t, 2, stats.WinsByDepth["depth-3"])
	assert.Equal(t, 3, stats.WinsByColor["white"])
	assert.Equal(t, 1, stats.WinsByColor["black"])
	assert.Equal(t, 418, stats.TotalPlies)
	assert.Equal(t, time.Minute, stats.TotalPlayTime)
	assert.InDelta(t, 50.0, stats.GetWinRate(), 0.001)
}

func TestRecordGameConcurrent(t *testing.T) {
	s := openTemp(t)

	const writers, games = 8, 50
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []error
	)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < games; i++ {
				err := s.RecordGame(GameResult{Mode: "engine-vs-engine", Winner: board.White, Depth: 2, Plies: 1})
				if err != nil {
					mu.Lock()
					failed = append(failed, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	require.Empty(t, failed)
	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, writers*games, stats.GamesPlayed)
	assert.Equal(t, writers*games, stats.TotalPlies)
	assert.Equal(t, writers*games, stats.WinsByColor["white"])
}

func TestGameResult(t *testing.T) {
	draw := GameResult{Winner: board.NoColor, HasHuman: true}
	assert.True(t, draw.Draw())
	assert.False(t, draw.Won())

	lost := GameResult{Winner: board.White, HumanColor: board.Black, HasHuman: true}
	assert.False(t, lost.Draw())
	assert.False(t, lost.Won())

	won := GameResult{Winner: board.Black, HumanColor: board.Black, HasHuman: true}
	assert.True(t, won.Won())

	eve := GameResult{Winner: board.White}
	assert.False(t, eve.Won())
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, nil)
	require.NoError(t, err)
	prefs := DefaultPreferences()
	prefs.Username = "Ada"
	require.NoError(t, s.SavePreferences(prefs))
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Username)
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("APPDATA", os.Getenv("XDG_DATA_HOME"))

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.DirExists(t, dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "db"), dbDir)
	assert.DirExists(t, dbDir)

	cfgPath, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yaml"), cfgPath)
}
