// Package logging configures the structured application log
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/blinkrail/blinkrail/internal/apperr"
	"github.com/blinkrail/blinkrail/internal/osutil"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var errUnknownLevel = &apperr.Error{
	Message: "unknown log level %q (must be debug, info, warn or error)",
}

// ParseLevel converts a level name from the config file to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, errUnknownLevel.Fmt(s)
}

// NewHandler returns a JSON handler writing to w at the given level.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// Init installs a default logger that writes to a rotated file at path. The
// returned closer releases the file.
func Init(path, level string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(path), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	slog.SetDefault(slog.New(NewHandler(w, lvl)))

	return w, nil
}
