package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/abhisek/talkbuddy/internal/store"
)

// ParseLevel maps a level name to a slog level. Unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewHandler builds the slog handler for format ("text" or "json") writing to w.
func NewHandler(w io.Writer, format string, level slog.Level, color bool) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !color,
		}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

// NewLogger builds the process logger. Logs go to LogFile when set, else to
// fallbackPath when non-empty, else to stderr. The returned closer releases
// the log file and is never nil.
func (c Config) NewLogger(fallbackPath string) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	path := c.LogFile
	if path == "" {
		path = fallbackPath
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	color := true
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer, color = f, f.Close, false
	}

	h, err := NewHandler(w, c.LogFormat, level, color)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return slog.New(h), closer, nil
}
