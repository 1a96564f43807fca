package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/pgnview-go/internal/errors"
)

// Log formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string

	// Format is LogFormatJSON or LogFormatConsole.
	Format string
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: LogFormatConsole,
	}
}

// Validate checks the level and format names.
func (l *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log level: %v: %w", err, errors.ErrInvalidConfig)
	}
	switch l.Format {
	case LogFormatJSON, LogFormatConsole:
		return nil
	}
	return fmt.Errorf("log format %q, want %q or %q: %w", l.Format, LogFormatJSON, LogFormatConsole, errors.ErrInvalidConfig)
}

// NewLogger builds a logger writing to stderr.
func (l *LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %v: %w", err, errors.ErrInvalidConfig)
	}

	var zc zap.Config
	if l.Format == LogFormatJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
