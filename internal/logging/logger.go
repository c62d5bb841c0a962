// Package logging builds the slog loggers the dashboard binaries share.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/citanz/dashboard/backend/internal/config"
)

// AppName is attached to every entry as "app".
const AppName = "citanz-dashboard"

// New builds a slog.Logger writing to stdout according to cfg.
func New(cfg config.LoggingConfig) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter is New with an explicit destination. cmd/report passes stderr
// so stdout stays reserved for the report itself.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   cfg.IncludeCaller,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", AppName)
}

// replaceAttr renders durations (load times, cache TTLs) as "1.5s" rather than
// nanosecond integers in JSON output.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.String(a.Key, a.Value.Duration().Round(time.Microsecond).String())
	}
	return a
}

// Discard returns a logger that drops everything; used by tests and tools
// that only want errors on stderr.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
