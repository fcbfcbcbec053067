// Package logging builds slotboard's zerolog logger.
//
// The TUI owns the terminal, so logs always go to a rotating file. CLI
// commands additionally get a console writer on stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and sinks.
type Config struct {
	Level string
	File  string
	// Console, when set, receives human-readable output in addition to File.
	Console io.Writer
}

const consoleTimeFormat = "15:04:05"

// New returns a logger and the closer for its file sink.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}
		writers = append(writers, rotator)
		closer = rotator
	}
	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: cfg.Console, TimeFormat: consoleTimeFormat})
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// ParseLevel maps a config level to zerolog, defaulting to info.
func ParseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	if trimmed == "warning" {
		trimmed = "warn"
	}
	parsed, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return parsed, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Since formats an elapsed duration for log fields.
func Since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
