// Package logger builds the structured loggers used by the decoders and the CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is slog.Level.
type Level = slog.Level

const (
	LevelTrace   = slog.Level(-8)
	LevelDebug   = slog.LevelDebug
	LevelInfo    = slog.LevelInfo
	LevelWarning = slog.LevelWarn
	LevelError   = slog.LevelError
)

// EnvLevel is the environment variable read by FromEnv.
const EnvLevel = "LOG_LEVEL"

// New returns a JSON logger writing to w at the given minimum level.
func New(w io.Writer, level Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// FromEnv returns a JSON logger on stderr with its level taken from LOG_LEVEL,
// or fallback when the variable is unset or invalid.
func FromEnv(fallback Level) *slog.Logger {
	level := fallback

	if s := os.Getenv(EnvLevel); s != "" {
		if parsed, err := ParseLevel(s); err == nil {
			level = parsed
		}
	}

	return New(os.Stderr, level)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}

	return l
}

// ParseLevel converts a string level name to slog.Level.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s (defaulting to INFO)", levelStr)
	}
}
