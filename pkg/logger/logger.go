package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var Log *slog.Logger

// Options selects the handler. JSON is forced in release mode.
type Options struct {
	Format  string // "json" or "text"
	Release bool
	Output  io.Writer
}

func Init(opts Options) {
	Log = New(opts)
	slog.SetDefault(Log)
}

// New builds a logger without touching the package global.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	// JSON handler for production-ready logging
	if opts.Release || opts.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
		NoColor:    out != os.Stdout,
	}))
}

// Get returns the global logger, falling back to slog's default before Init.
func Get() *slog.Logger {
	if Log == nil {
		return slog.Default()
	}
	return Log
}
