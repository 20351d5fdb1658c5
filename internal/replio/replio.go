// Package replio reads one logical REPL input at a time, prompting for
// continuation lines while a multi-line `def`/`if`/`while` block is
// still open, with brace-balance tracking so a block spanning several
// physical lines can be typed before being handed to the runner as one
// unit.
package replio

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether f is an interactive terminal, used by the REPL to
// decide whether to color its prompts/output: colors are disabled when
// stdout isn't a TTY.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Reader wraps a chzyer/readline instance, switching its prompt between a
// primary and a continuation prompt depending on whether the
// accumulated input so far is balanced.
type Reader struct {
	rl           *readline.Instance
	primary      string
	continuation string
}

// New creates a Reader. primary is shown at the start of a new logical
// input (typically "> "); continuation is shown on every line after that
// while brackets remain open (typically "... ").
func New(primary, continuation string) (*Reader, error) {
	rl, err := readline.New(primary)
	if err != nil {
		return nil, err
	}
	return &Reader{rl: rl, primary: primary, continuation: continuation}, nil
}

// Close releases the underlying readline instance.
func (r *Reader) Close() error {
	return r.rl.Close()
}

// SaveHistory records a completed logical input for up/down-arrow recall.
func (r *Reader) SaveHistory(input string) error {
	return r.rl.SaveHistory(input)
}

// ReadLogical reads physical lines until balanced() reports the
// accumulated input has no open brackets and is non-empty, or the user
// sends EOF (Ctrl+D) before any non-blank line was entered, in which
// case it returns io.EOF. A blank first line is skipped rather than
// treated as a (trivially balanced) empty logical input.
func (r *Reader) ReadLogical() (string, error) {
	var lines []string
	for {
		if len(lines) == 0 {
			r.rl.SetPrompt(r.primary)
		} else {
			r.rl.SetPrompt(r.continuation)
		}

		line, err := r.rl.Readline()
		if err != nil {
			if len(lines) == 0 {
				return "", io.EOF
			}
			return "", err
		}

		if len(lines) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)

		joined := strings.Join(lines, "\n")
		if balanced(joined) {
			return joined, nil
		}
	}
}

// balanced reports whether src has no unclosed (, [, or { — ignoring
// bracket characters that appear inside a string literal or a //
// comment, mirroring how the lexer itself treats those spans.
func balanced(src string) bool {
	depth := 0
	inString := false
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if inString {
			switch ch {
			case '\\':
				i++ // skip the escaped character
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				// rest of this physical line is a comment
				for i < len(runes) && runes[i] != '\n' {
					i++
				}
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth <= 0
}
