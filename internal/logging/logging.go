// Package logging wraps github.com/charmbracelet/log for the engine's
// build/run diagnostics: a leveled logger shared by the pump and the CLI
// driver.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w (os.Stderr if nil) at the given level.
// Verbose enables caller/timestamp reporting.
func New(w io.Writer, level log.Level, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    verbose,
		ReportTimestamp: verbose,
		Level:           level,
	})
	logger.SetStyles(log.DefaultStyles())
	return logger
}
