package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "info"
	cfg.Output = &buf

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Named("engine").Info("search finished", zap.Int("depth", 3))
	require.NoError(t, logger.Close())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "search finished")
	assert.Contains(t, out, "engine")
	assert.Contains(t, out, `"depth": 3`)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "chatty"
	cfg.Output = &bytes.Buffer{}

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logger.Level())

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, logger.Level())
	assert.Error(t, logger.SetLevel("loud"))
}

func TestProductionWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := DefaultConfig()
	cfg.Mode = Production
	cfg.Level = "debug"
	cfg.Directory = dir
	cfg.Console = false

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("game over", zap.String("winner", "white"))
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close(), "close is idempotent")

	data, err := os.ReadFile(filepath.Join(dir, cfg.Filename))
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"game over"`)
	assert.Contains(t, line, `"winner":"white"`)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Mode = "verbose"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Mode = Production
	cfg.Filename = ""
	assert.Error(t, cfg.Validate())
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("dropped")
	assert.NoError(t, logger.Close())
}
