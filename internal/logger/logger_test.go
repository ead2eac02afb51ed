package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/config"
)

func TestNew_DefaultConfig(t *testing.T) {
	logger, err := New(config.NewDefaultLogConfig())

	require.NoError(t, err)
	logger.Info().Msg("smoke")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "chatty"

	logger, err := New(cfg)

	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "snapdiff.log")
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = logFile
	cfg.LogFormat = "json"

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info().Str("key", "value").Msg("written to file")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"key":"value"`)
	assert.Contains(t, string(content), "written to file")
}

func TestNewWithCompareID_GroupsFileLogsPerSession(t *testing.T) {
	baseDir := t.TempDir()
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(baseDir, "snapdiff.log")
	cfg.LogFormat = "json"

	logger, err := NewWithCompareID(cfg, "20260826-153000")
	require.NoError(t, err)

	logger.Info().Msg("session log")

	sessionFile := filepath.Join(baseDir, "compares", "20260826-153000", "snapdiff.log")
	content, err := os.ReadFile(sessionFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "session log")
}

func TestLogLevelParser(t *testing.T) {
	parser := NewLogLevelParser()

	level, err := parser.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	level, err = parser.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	_, err = parser.ParseLevel("chatty")
	assert.Error(t, err)
}

func TestLogFormatParser(t *testing.T) {
	parser := NewLogFormatParser()

	assert.Equal(t, FormatJSON, parser.ParseFormat("json"))
	assert.Equal(t, FormatConsole, parser.ParseFormat("console"))
	assert.Equal(t, FormatText, parser.ParseFormat("text"))
	assert.Equal(t, FormatConsole, parser.ParseFormat("something-else"))
}

func TestConfigConverter(t *testing.T) {
	converter := NewConfigConverter()
	cfg := config.LogConfig{
		LogFile:       "/tmp/x.log",
		LogFormat:     "json",
		LogLevel:      "error",
		MaxLogSizeMB:  0,
		MaxLogBackups: 0,
	}

	loggerCfg, err := converter.ConvertConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, loggerCfg.Level)
	assert.Equal(t, FormatJSON, loggerCfg.Format)
	assert.True(t, loggerCfg.EnableFile)
	assert.Equal(t, 100, loggerCfg.MaxSizeMB)
	assert.Equal(t, 3, loggerCfg.MaxBackups)
}
