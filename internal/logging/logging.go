// Package logging builds the charmbracelet loggers used by the binaries.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w at the named level
// ("debug", "info", "warn", "error"). Unknown levels mean info.
func New(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
