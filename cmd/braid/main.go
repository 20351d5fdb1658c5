// Command braid runs the interpreter: no arguments starts the REPL, a
// single path argument runs that file, and `braid run`/`braid repl`/
// `braid version` give the same operations explicit subcommands with
// extra flags.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshaw/braid/cmd/braid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var pipelineErr *cmd.PipelineError
		if errors.As(err, &pipelineErr) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
