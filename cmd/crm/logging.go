package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// setupLogger builds the CLI logger. Logs go to w so they never mix with
// command output on stdout.
func setupLogger(w io.Writer, level, format string) *slog.Logger {
	logLevel, err := types.ParseLogLevel(level)
	if err != nil {
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case types.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		"service", "crm",
		"version", Version,
		"pid", os.Getpid(),
	)
}
