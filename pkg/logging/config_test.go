package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dupap/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.Empty(t, cfg.File)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("NewLoggerFromConfig writes to output path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
		})
		logger.Info().Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test message")
		assert.Contains(t, string(content), `"level":"info"`)
	})

	t.Run("log file sink receives JSON alongside console output", func(t *testing.T) {
		dir := t.TempDir()
		consolePath := filepath.Join(dir, "console.log")
		filePath := filepath.Join(dir, "dupap.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  consolePath,
			File:    filePath,
			NoColor: true,
		})
		logger.Warn().Int64("device_id", 12).Msg("group has untracked members")

		console, err := os.ReadFile(consolePath)
		require.NoError(t, err)
		assert.Contains(t, string(console), "WRN")
		assert.Contains(t, string(console), "group has untracked members")

		file, err := os.ReadFile(filePath)
		require.NoError(t, err)
		assert.Contains(t, string(file), `"level":"warn"`)
		assert.Contains(t, string(file), `"device_id":12`)
	})

	t.Run("unwritable log file falls back to primary output", func(t *testing.T) {
		dir := t.TempDir()
		primary := filepath.Join(dir, "primary.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: primary,
			File:   filepath.Join(dir, "missing", "dir", "dupap.log"),
		})
		logger.Info().Msg("still logged")

		content, err := os.ReadFile(primary)
		require.NoError(t, err)
		assert.Contains(t, string(content), "still logged")
	})

	t.Run("Configure sets global logger from config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "global.log")

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("default fields are attached", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fields.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
			Fields: map[string]any{"component": "reconcile", "attempt": 1},
		})
		logger.Info().Msg("with fields")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"component":"reconcile"`)
		assert.Contains(t, string(content), `"attempt":1`)
	})
}
