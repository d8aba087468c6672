// Package logging configures the process-wide slog logger and defines the
// canonical attribute keys used across dailyrelease.
package logging

import (
	"io"
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyRelease    = "release"
	KeyDate       = "date"
	KeyRepository = "repository"
	KeyBranch     = "branch"
	KeyPull       = "pull"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
)

func Release(r string) slog.Attr { return slog.String(KeyRelease, r) }
func Date(d string) slog.Attr { return slog.String(KeyDate, d) }
func Repository(r string) slog.Attr { return slog.String(KeyRepository, r) }
func Branch(b string) slog.Attr { return slog.String(KeyBranch, b) }
func Pull(number int) slog.Attr { return slog.Int(KeyPull, number) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Outcome(o string) slog.Attr { return slog.String(KeyOutcome, o) }
func DurationMS(d time.Duration) slog.Attr {
	return slog.Int64(KeyDurationMS, d.Milliseconds())
}

// Options selects the log level.
type Options struct {
	// Debug enables debug records, including go-git internals.
	Debug bool
	// Verbose enables info records. Without it only warnings and errors print.
	Verbose bool
}

// Level maps the options to a slog level.
func (o Options) Level() slog.Level {
	switch {
	case o.Debug:
		return slog.LevelDebug
	case o.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// New builds a text logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level()}))
}

// Setup builds a logger and installs it as the slog default.
func Setup(w io.Writer, opts Options) *slog.Logger {
	logger := New(w, opts)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
