package storage

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// UserPreferences stores user settings.
// The search fields mirror the engine options of the last session.
type UserPreferences struct {
	Username       string    `json:"username"`
	GameMode       string    `json:"game_mode"`
	HumanColor     string    `json:"human_color"`
	Depth          int       `json:"depth"`
	KingWeight     int       `json:"king_weight"`
	Randomize      bool      `json:"randomize"`
	RootCutoff     string    `json:"root_cutoff"`
	MaximalCapture bool      `json:"maximal_capture"`
	FlipBoard      bool      `json:"flip_board"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		GameMode:   "human-vs-engine",
		HumanColor: "white",
		Depth:      3,
		KingWeight: board.DefaultKingWeight,
		Randomize:  true,
		RootCutoff: "prune",
		LastPlayed: time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByMode     map[string]int `json:"wins_by_mode"`
	WinsByDepth    map[string]int `json:"wins_by_depth"`
	WinsByColor    map[string]int `json:"wins_by_color"`
	TotalPlies     int            `json:"total_plies"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByMode:  make(map[string]int),
		WinsByDepth: make(map[string]int),
		WinsByColor: make(map[string]int),
	}
}

// GameResult describes a finished game for the statistics.
type GameResult struct {
	Mode       string
	Winner     board.Color // NoColor for a draw
	HumanColor board.Color
	HasHuman   bool // exactly one side was played by a human
	Depth      int
	Plies      int
	Duration   time.Duration
}

// Draw reports whether the game ended without a winner.
func (r GameResult) Draw() bool {
	return r.Winner != board.White && r.Winner != board.Black
}

// Won reports whether the human beat the engine.
func (r GameResult) Won() bool {
	return r.HasHuman && !r.Draw() && r.Winner == r.HumanColor
}

// Storage wraps BadgerDB for persistent storage. It is safe for concurrent
// use.
type Storage struct {
	db *badger.DB

	// statsMu serializes read-modify-write updates of the stats key, which
	// badger would otherwise reject with ErrConflict.
	statsMu sync.Mutex
}

// NewStorage opens the database in the platform data directory.
func NewStorage(logger *zap.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, logger)
}

// Open opens (or creates) the database in dir. Badger's own messages go to
// logger at warning level and above; a nil logger silences them.
func Open(dir string, logger *zap.Logger) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	if logger != nil {
		opts.Logger = newBadgerLogger(logger)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, keyPreferences, prefs)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyPreferences, prefs)
	})
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, keyStats, stats)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyStats, stats)
	})
	return stats, err
}

// RecordGame adds a finished game to the statistics. The read and the
// write happen in one transaction; concurrent calls run one at a time.
func (s *Storage) RecordGame(result GameResult) error {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getJSON(txn, keyStats, stats); err != nil {
			return err
		}
		stats.apply(result)
		return setJSON(txn, keyStats, stats)
	})
}

func (s *GameStats) apply(result GameResult) {
	if s.WinsByMode == nil || s.WinsByDepth == nil || s.WinsByColor == nil {
		fresh := NewGameStats()
		s.WinsByMode = lo.Assign(fresh.WinsByMode, s.WinsByMode)
		s.WinsByDepth = lo.Assign(fresh.WinsByDepth, s.WinsByDepth)
		s.WinsByColor = lo.Assign(fresh.WinsByColor, s.WinsByColor)
	}

	s.GamesPlayed++
	s.TotalPlies += result.Plies
	s.TotalPlayTime += result.Duration

	if !result.Draw() {
		s.WinsByColor[strings.ToLower(result.Winner.String())]++
	}

	switch {
	case result.Draw():
		s.Draws++
		s.CurrentStreak = 0
	case !result.HasHuman:
		// Engine against engine, or two humans: no personal record.
	case result.Won():
		s.Wins++
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestWinStrk {
			s.LongestWinStrk = s.CurrentStreak
		}
		s.WinsByMode[result.Mode]++
		s.WinsByDepth[depthKey(result.Depth)]++
	default:
		s.Losses++
		s.CurrentStreak = 0
	}
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	decided := s.Wins + s.Losses + s.Draws
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided) * 100
}
