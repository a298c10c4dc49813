// Package cli implements the psg command-line interface.
//
// Commands operate on a workspace: the sheets and stores saved in the data
// directory plus the puzzle database, which is loaded lazily the first time
// a command needs it. `psg shell` keeps one workspace alive across many
// commands, so the database is parsed only once per session.
//
// # Commands
//
// The main groups are:
//   - sheets: new, add-to, copy, remove, reorder, name, header, save, load, delete
//   - stores: filter, sample, union, mate, themes
//   - output: list, show, print, diagram, lineage, browse
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. When log.file is configured the output
// is also written to a rotating file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/puzzlesheet/pkg/config"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logWriter tees w into a rotating file when cfg names one. The returned
// closer is nil when no file is used.
func logWriter(w io.Writer, cfg config.LogConfig) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return w, nil
	}
	f := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return io.MultiWriter(w, f), f
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// e.g. "Loaded 3120541 puzzles (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
