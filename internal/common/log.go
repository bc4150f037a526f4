package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	debug  atomic.Bool
	logger atomic.Pointer[slog.Logger]
)

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// SetupLogger replaces the process logger. level is debug|info|warn|error,
// format is text|json.
func SetupLogger(level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	debug.Store(lvl <= slog.LevelDebug)
	logger.Store(slog.New(h))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func Logger() *slog.Logger {
	return logger.Load()
}

// WithRun tags every line of one filter run.
func WithRun(id string) *slog.Logger {
	return Logger().With("run", id)
}

func INFO(format string, args ...any) {
	Logger().Info(fmt.Sprintf(format, args...))
}
func WARN(format string, args ...any) {
	Logger().Warn(fmt.Sprintf(format, args...))
}
func FAIL(format string, args ...any) {
	Logger().Error(fmt.Sprintf(format, args...))
}

func DINFO(format string, args ...any) {
	if debug.Load() {
		Logger().Debug(fmt.Sprintf(format, args...))
	}
}
func DWARN(format string, args ...any) {
	if debug.Load() {
		Logger().Debug("[WARN] " + fmt.Sprintf(format, args...))
	}
}

