// Package config loads the YAML configuration shared by the CLI and the
// desktop UI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/logging"
)

// Config is the root of the configuration file.
type Config struct {
	Search  Search         `yaml:"search"`
	Game    Game           `yaml:"game"`
	Log     logging.Config `yaml:"log"`
	Storage Storage        `yaml:"storage"`
}

// Search holds the engine settings.
type Search struct {
	Depth          int                     `yaml:"depth"`
	KingWeight     int                     `yaml:"king_weight"`
	Randomize      bool                    `yaml:"randomize"`
	Seed           uint64                  `yaml:"seed"`
	RootCutoff     engine.RootCutoffPolicy `yaml:"root_cutoff"`
	MaximalCapture bool                    `yaml:"maximal_capture"`
}

// Game holds the settings of the console and desktop drivers.
type Game struct {
	Mode       string `yaml:"mode"`        // human-vs-engine, engine-vs-engine, human-vs-human
	HumanColor string `yaml:"human_color"` // white or black
	MaxPlies   int    `yaml:"max_plies"`   // 0 = no limit
}

// Storage holds the preferences database settings.
type Storage struct {
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory"` // empty = platform data directory
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := engine.DefaultOptions()
	return &Config{
		Search: Search{
			Depth:      opts.Depth,
			KingWeight: opts.KingWeight,
			Randomize:  opts.Randomize,
			RootCutoff: opts.RootCutoff,
		},
		Game: Game{
			Mode:       "human-vs-engine",
			HumanColor: "white",
			MaxPlies:   200,
		},
		Log: logging.DefaultConfig(),
		Storage: Storage{
			Enabled: true,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result. Keys missing
// from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if err := c.EngineOptions().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseMode(c.Game.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, ok := board.ParseColor(c.Game.HumanColor); !ok {
		errs = append(errs, fmt.Errorf("config: unknown human color %q", c.Game.HumanColor))
	}
	if c.Game.MaxPlies < 0 {
		errs = append(errs, fmt.Errorf("config: max plies must not be negative, got %d", c.Game.MaxPlies))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// EngineOptions maps the search section to engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Depth:          c.Search.Depth,
		KingWeight:     c.Search.KingWeight,
		Randomize:      c.Search.Randomize,
		Seed:           c.Search.Seed,
		RootCutoff:     c.Search.RootCutoff,
		MaximalCapture: c.Search.MaximalCapture,
	}
}

// SetEngineOptions copies opts into the search section.
func (c *Config) SetEngineOptions(opts engine.Options) {
	c.Search = Search{
		Depth:          opts.Depth,
		KingWeight:     opts.KingWeight,
		Randomize:      opts.Randomize,
		Seed:           opts.Seed,
		RootCutoff:     opts.RootCutoff,
		MaximalCapture: opts.MaximalCapture,
	}
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Mode says who plays each side.
type Mode int

const (
	HumanVsEngine Mode = iota
	EngineVsEngine
	HumanVsHuman
)

var modeNames = [...]string{"human-vs-engine", "engine-vs-engine", "human-vs-human"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name. "hve", "eve" and "hvh" are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human-vs-engine", "hve", "":
		return HumanVsEngine, nil
	case "engine-vs-engine", "eve":
		return EngineVsEngine, nil
	case "human-vs-human", "hvh":
		return HumanVsHuman, nil
	}
	return HumanVsEngine, fmt.Errorf("config: unknown game mode %q", s)
}
