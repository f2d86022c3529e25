// Package logging builds the leveled console logger used across the CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/config"
)

// Prefix is printed before every log line.
const Prefix = "todo"

// New returns a text logger writing to w.
// --debug selects debug level and --quiet selects error level; otherwise
// the configured log.level applies.
func New(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           Level(cfg),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// Level resolves the effective log level for cfg.
func Level(cfg *config.Config) log.Level {
	switch {
	case cfg.Debug:
		return log.DebugLevel
	case cfg.Quiet:
		return log.ErrorLevel
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Log.Level)))
	if err != nil {
		return log.WarnLevel
	}
	return level
}
