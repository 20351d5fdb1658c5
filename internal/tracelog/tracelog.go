// Package tracelog provides the runner's optional execution trace: a
// thin wrapper over the standard library's log.Logger writing to
// stderr, silent unless explicitly enabled. It's a reusable collaborator
// rather than a package-level bool so the runner and REPL can each hold
// (and test) their own Logger.
package tracelog

import (
	"io"
	"log"
	"os"
)

// Logger gates a log.Logger behind an Enabled flag. The zero value has
// Enabled == false and is safe to use: every Tracef call is then a no-op.
type Logger struct {
	Enabled bool
	log     *log.Logger
}

// New creates a Logger writing to out when enabled is true. enabled is
// typically `--trace` OR'd with the BRAID_DEBUG environment variable
// being set to a non-empty value.
func New(out io.Writer, enabled bool) *Logger {
	return &Logger{
		Enabled: enabled,
		log:     log.New(out, "[trace] ", 0),
	}
}

// FromEnv reports whether BRAID_DEBUG is set to anything non-empty,
// letting the CLI enable tracing without the --trace flag.
func FromEnv() bool {
	return os.Getenv("BRAID_DEBUG") != ""
}

// Tracef logs a formatted trace line if l is non-nil and enabled.
func (l *Logger) Tracef(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	l.log.Printf(format, args...)
}
