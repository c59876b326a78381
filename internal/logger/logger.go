// Package logger builds the structured logger used for diagnostics. Normal
// output never goes through it.
package logger

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

const DefaultLevel = "warn"

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New returns a text logger writing to w at the given level. Debug logging
// adds the source file and line of each record.
func New(w io.Writer, level string) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		Level: LogLevel(level),
	}

	if LogLevel(level) == slog.LevelDebug {
		handlerOptions.AddSource = true
		handlerOptions.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, ok := a.Value.Any().(*slog.Source)
				if ok {
					dir := filepath.Base(filepath.Dir(source.File))
					a.Value = slog.StringValue(dir + "/" + filepath.Base(source.File) + ":" + strconv.Itoa(source.Line))
				}
			}

			return a
		}
	}

	return slog.New(slog.NewTextHandler(w, handlerOptions))
}

// LogLevel maps a level name to a slog.Level. Unknown names fall back to warn.
func LogLevel(level string) slog.Level {
	if l, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return slog.LevelWarn
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	return ok
}
