// Package app wires configuration, logging and storage together for the
// executables.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/logging"
	"github.com/hailam/checkersplay/internal/storage"
)

// Flags are the command line settings shared by the executables. A flag
// overrides the configuration file only when it is set explicitly.
type Flags struct {
	ConfigPath     string
	LogLevel       string
	Depth          int
	KingWeight     int
	Randomize      bool
	Seed           uint64
	RootCutoff     string
	MaximalCapture bool
	Mode           string
	HumanColor     string
	MaxPlies       int
	NoStorage      bool

	fs *pflag.FlagSet
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	def := config.Default()

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "configuration file (default: config.yaml in the data directory, if present)")
	fs.StringVar(&f.LogLevel, "log-level", def.Log.Level, "minimum log level: debug, info, warn, error")
	fs.IntVarP(&f.Depth, "depth", "d", def.Search.Depth, "search depth in plies")
	fs.IntVar(&f.KingWeight, "king-weight", def.Search.KingWeight, "material value of a king")
	fs.BoolVar(&f.Randomize, "randomize", def.Search.Randomize, "shuffle moves of equal standing")
	fs.Uint64Var(&f.Seed, "seed", 0, "shuffle seed (0 = from the clock)")
	fs.StringVar(&f.RootCutoff, "root-cutoff", def.Search.RootCutoff.String(), "root cutoff policy: prune or rescan")
	fs.BoolVar(&f.MaximalCapture, "maximal-capture", def.Search.MaximalCapture, "captures are compulsory and must be completed")
	fs.StringVarP(&f.Mode, "mode", "m", def.Game.Mode, "human-vs-engine, engine-vs-engine or human-vs-human")
	fs.StringVar(&f.HumanColor, "human", def.Game.HumanColor, "color played by the human: white or black")
	fs.IntVar(&f.MaxPlies, "max-plies", def.Game.MaxPlies, "draw the game after this many plies (0 = no limit)")
	fs.BoolVar(&f.NoStorage, "no-storage", false, "do not read or write preferences and game records")
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// Apply copies the explicitly set flags into cfg and validates the result.
func (f *Flags) Apply(cfg *config.Config) error {
	if f.changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if f.changed("depth") {
		cfg.Search.Depth = f.Depth
	}
	if f.changed("king-weight") {
		cfg.Search.KingWeight = f.KingWeight
	}
	if f.changed("randomize") {
		cfg.Search.Randomize = f.Randomize
	}
	if f.changed("seed") {
		cfg.Search.Seed = f.Seed
	}
	if f.changed("root-cutoff") {
		policy, err := engine.ParseRootCutoffPolicy(f.RootCutoff)
		if err != nil {
			return err
		}
		cfg.Search.RootCutoff = policy
	}
	if f.changed("maximal-capture") {
		cfg.Search.MaximalCapture = f.MaximalCapture
	}
	if f.changed("mode") {
		cfg.Game.Mode = f.Mode
	}
	if f.changed("human") {
		cfg.Game.HumanColor = f.HumanColor
	}
	if f.changed("max-plies") {
		cfg.Game.MaxPlies = f.MaxPlies
	}
	if f.NoStorage {
		cfg.Storage.Enabled = false
	}
	return cfg.Validate()
}

// Load reads the configuration file and applies the flags. Without an
// explicit path the file in the data directory is used if it exists.
func (f *Flags) Load() (*config.Config, error) {
	path := f.ConfigPath
	if path == "" {
		path = defaultConfigFile()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfigFile() string {
	path, err := storage.DefaultConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}

// Env holds what a command needs to run.
type Env struct {
	Config  *config.Config
	Log     *logging.Logger
	Storage *storage.Storage // nil when storage is disabled or unavailable
}

// Setup loads the configuration and builds the logger. Storage is opened
// when withStorage is set and the configuration enables it; failing to open
// it is logged and leaves Storage nil.
func Setup(f *Flags, withStorage bool) (*Env, error) {
	cfg, err := f.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	env := &Env{Config: cfg, Log: logger}
	if withStorage && cfg.Storage.Enabled {
		env.Storage, err = openStorage(cfg.Storage, logger.Logger)
		if err != nil {
			logger.Warn("storage disabled", zap.Error(err))
		}
	}
	return env, nil
}

func openStorage(cfg config.Storage, logger *zap.Logger) (*storage.Storage, error) {
	if cfg.Directory == "" {
		return storage.NewStorage(logger)
	}
	return storage.Open(cfg.Directory, logger)
}

// Engine creates an engine from the search settings.
func (e *Env) Engine() *engine.Engine {
	return engine.New(e.Config.EngineOptions(), e.Log.Logger)
}

// Mode returns the configured game mode.
func (e *Env) Mode() config.Mode {
	mode, _ := config.ParseMode(e.Config.Game.Mode)
	return mode
}

// HumanColor returns the configured human color, White by default.
func (e *Env) HumanColor() board.Color {
	if c, ok := board.ParseColor(strings.TrimSpace(e.Config.Game.HumanColor)); ok && c == board.Black {
		return board.Black
	}
	return board.White
}

// Close closes the storage and flushes the logger.
func (e *Env) Close() error {
	var errs []error
	if e.Storage != nil {
		errs = append(errs, e.Storage.Close())
	}
	errs = append(errs, e.Log.Close())
	return errors.Join(errs...)
}
