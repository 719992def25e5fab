// Package cli holds the presentation helpers shared by clidrive commands:
// logger construction, fatal exits and styled terminal output.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var osExit = os.Exit

// NewLogger builds the command-line logger. Text output goes through tint,
// uncoloured when stdout is not a terminal.
func NewLogger(w io.Writer, debug, json bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}
	return slog.New(handler)
}

// LogFatal logs msg with err and the key-value pairs, then exits with 1
func LogFatal(logger *slog.Logger, msg string, err error, kv ...any) {
	if err != nil {
		kv = append(kv, "error", err)
	}
	logger.Error(msg, kv...)
	osExit(1)
}
