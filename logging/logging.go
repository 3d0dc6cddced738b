// Package logging builds the slog loggers used by the example programs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a logger writing to w at the given level. Level names are those of slog
// ("debug", "info", "warn", "error"), case-insensitive, optionally with an offset such as
// "info+2". An empty level means info. A nil w writes to stderr.
//
// Parameters:
//   - level: the minimum level to log
//   - json: true for JSON records, false for logfmt-style text
//   - w: the destination
//
// Returns:
//   - *slog.Logger: the logger
//   - error: error if level cannot be parsed
func New(level string, json bool, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), nil
}

// ParseLevel parses a slog level name.
//
// Parameters:
//   - level: the level name; empty means info
//
// Returns:
//   - slog.Level: the parsed level
//   - error: error if the name is not a slog level
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
