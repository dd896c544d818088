package logging

import (
	"alcyxob/exercise-lookup/internal/config"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerOptions returns handler options with log-aggregator friendly keys
// ("message" and "severity" instead of slog's "msg" and "level").
func HandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the service logger writing to stdout and installs it as the slog default.
func New(cfg config.LogConfig, serviceName string) *slog.Logger {
	logger := NewWithWriter(os.Stdout, cfg).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter builds a logger on w without touching the slog default.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := HandlerOptions(ParseLevel(cfg.Level))
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
