// Package errors formats pipeline diagnostics with source context,
// line/column information, and a caret pointing at the offending column:
// a message, a position, and a Format method with a plain and an
// ANSI-colored rendering.
package errors

import (
	"fmt"
	"strings"

	"github.com/rshaw/braid/internal/source"
)

// Kind identifies which pipeline stage raised a Diagnostic.
type Kind string

const (
	KindLex      Kind = "LexError"
	KindParse    Kind = "ParseError"
	KindType     Kind = "TypeError"
	KindRuntime  Kind = "RuntimeError"
	KindInternal Kind = "InternalError"
)

// Diagnostic is a single structured error: a stage kind, a position, and a
// human message. Every stage raises at most one of these; the runner is the
// only place that converts it into a user-facing Failure string.
type Diagnostic struct {
	Kind    Kind
	Pos     source.Position
	Message string
	Source  string // full source text, used to extract the offending line
	File    string // display name: a file path, or "<repl>"/"<eval>"
}

// New builds a Diagnostic. Source and File may be filled in later via
// WithSource once they're known to the caller (the lexer and
// parser usually don't carry the filename).
func New(kind Kind, pos source.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches the source text so Format can print the offending
// line; it returns the receiver for chaining.
func (d *Diagnostic) WithSource(src, file string) *Diagnostic {
	d.Source = src
	d.File = file
	return d
}

// Error implements the error interface with the plain (uncolored) render.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a "line | source" excerpt and a caret
// under the offending column. When color is true, the message and caret are
// wrapped in ANSI codes for terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s: %s at %s:%d:%d\n", d.Kind, d.Message, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: %s at %d:%d\n", d.Kind, d.Message, d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Failure renders a Diagnostic at the runner boundary as "kind: message
// at pos", collapsed to one line.
func (d *Diagnostic) Failure() string {
	if d.File != "" {
		return fmt.Sprintf("%s: %s at %s:%d:%d", d.Kind, d.Message, d.File, d.Pos.Line, d.Pos.Column)
	}
	return fmt.Sprintf("%s: %s at %d:%d", d.Kind, d.Message, d.Pos.Line, d.Pos.Column)
}
