package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	braiderrors "github.com/rshaw/braid/internal/errors"
	"github.com/rshaw/braid/internal/replio"
	"github.com/rshaw/braid/internal/runner"
	"github.com/rshaw/braid/internal/runtime"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

// runRepl reads one logical input block, incrementally type-checks and
// evaluates it against the session's persisted state, prints the result
// or the failure, and repeats until Ctrl-D: results in yellow, failures
// in red; colors are disabled when stdout isn't a TTY (internal/replio).
// An InternalError ends the session as a *PipelineError (exit code 1).
func runRepl(_ *cobra.Command, _ []string) error {
	useColor := replio.IsTTY(os.Stdout)
	resultColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed)
	if !useColor {
		resultColor.DisableColor()
		errorColor.DisableColor()
	}

	reader, err := replio.New("> ", "... ")
	if err != nil {
		return err
	}
	defer reader.Close()

	session := runner.NewSession(traceLogger())

	for {
		input, err := reader.ReadLogical()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}
		_ = reader.SaveHistory(input)

		result := session.EvalInput(input)
		if !result.OK() {
			errorColor.Println(result.Message())
			if strings.HasPrefix(result.Message(), string(braiderrors.KindInternal)) {
				return &PipelineError{msg: result.Message()}
			}
			continue
		}
		if v := result.Value(); v.Kind != runtime.KindUnit {
			resultColor.Println(v.Stringify())
		}
	}
}
