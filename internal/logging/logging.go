// Package logging builds the zap loggers used by the engine, the drivers and
// the desktop UI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Mode string

const (
	Development Mode = "dev"
	Production  Mode = "prod"
)

// Config controls where log records go.
type Config struct {
	Mode       Mode   `yaml:"mode"`
	Level      string `yaml:"level"`
	Directory  string `yaml:"directory"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxAge     int    `yaml:"max_age"`  // days
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local_time"`
	// Console also writes records to Output (stderr when nil).
	Console bool `yaml:"console"`

	Output io.Writer `yaml:"-"`
}

// DefaultConfig returns a development configuration that logs warnings and
// errors to stderr.
func DefaultConfig() Config {
	return Config{
		Mode:       Development,
		Level:      "warn",
		Directory:  "./logs",
		Filename:   "checkers.log",
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
		LocalTime:  true,
		Console:    true,
	}
}

// Validate checks the mode and, in production, the file settings.
func (c Config) Validate() error {
	switch c.Mode {
	case Development, Production:
	default:
		return fmt.Errorf("logging: unknown mode %q", c.Mode)
	}
	if c.Mode == Production && c.Filename == "" {
		return errors.New("logging: production mode needs a filename")
	}
	return nil
}

// Logger is a zap logger that owns its file sinks.
type Logger struct {
	*zap.Logger
	level     zap.AtomicLevel
	resources []io.Closer
	closeOnce sync.Once
}

// New builds a Logger from cfg. An unknown level falls back to info.
func New(cfg Config) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderConfig := encoderConfig(cfg.Mode)
	var (
		cores     []zapcore.Core
		resources []io.Closer
	)

	if cfg.Mode == Production {
		if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Directory, cfg.Filename),
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
		resources = append(resources, writer)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), level))
	}

	if cfg.Console {
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(out)), level))
	}

	var core zapcore.Core = zapcore.NewNopCore()
	if len(cores) > 0 {
		core = zapcore.NewTee(cores...)
	}

	return &Logger{
		Logger:    zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.PanicLevel)),
		level:     level,
		resources: resources,
	}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.FatalLevel)}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) error {
	return l.level.UnmarshalText([]byte(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Close flushes buffered records and closes the log files.
func (l *Logger) Close() error {
	var errs []error

	l.closeOnce.Do(func() {
		// Syncing stderr fails on some platforms; only file sinks matter.
		if err := l.Sync(); err != nil && len(l.resources) > 0 {
			errs = append(errs, fmt.Errorf("sync error: %w", err))
		}
		for _, res := range l.resources {
			if err := res.Close(); err != nil {
				errs = append(errs, fmt.Errorf("resource close error: %w", err))
			}
		}
		l.resources = nil
	})

	return errors.Join(errs...)
}

func encoderConfig(mode Mode) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "msg",
		StacktraceKey:    "stack",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: "| ",
	}
	if mode == Development {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.ConsoleSeparator = " "
	}
	return cfg
}
