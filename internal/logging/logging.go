// Package logging builds the application logger on top of charmbracelet/log.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured or the value is unknown.
const DefaultLevel = log.WarnLevel

// Options configures New.
type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

// New returns a logger writing to opts.Writer (stderr by default).
func New(opts Options) *log.Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = DefaultLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
