package logger

import (
	"github.com/rs/zerolog"

	"github.com/snapdiff/snapdiff/internal/config"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// New creates a new logger instance from application config
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// NewWithCompareID creates a new logger instance whose file output is grouped
// under the given comparison session ID
func NewWithCompareID(cfg config.LogConfig, compareID string) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithCompareID(compareID).
		Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
