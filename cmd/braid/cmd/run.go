package cmd

import (
	"fmt"
	"os"

	"github.com/rshaw/braid/internal/ast"
	"github.com/rshaw/braid/internal/pipeline"
	"github.com/rshaw/braid/internal/runner"
	"github.com/rshaw/braid/internal/runtime"
	"github.com/rshaw/braid/internal/tracelog"
	"github.com/spf13/cobra"
)

// PipelineError wraps a Failure message any interpreter stage produced;
// Execute's caller maps it to exit code 1, distinguishing it from an
// ordinary Cobra usage error (exit code 2).
type PipelineError struct{ msg string }

func (e *PipelineError) Error() string { return e.msg }

var (
	evalExpr      string
	dumpAST       bool
	typeCheckFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a braid file or expression",
	Long: `Execute a braid program from a file or inline expression.

Examples:
  # Run a script file
  braid run script.braid

  # Evaluate an inline expression
  braid run -e "print(1 + 2)"

  # Run with the parsed AST dumped first
  braid run --dump-ast script.braid`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed surface AST before running")
	runCmd.Flags().BoolVar(&typeCheckFlag, "type-check", true, "perform type-checking before evaluation")
}

// runScript is shared by `braid run [file]` and the root command's bare
// "a single path argument" invocation shape.
func runScript(c *cobra.Command, args []string) error {
	opts := runner.Options{
		Trace:         traceLogger(),
		SkipTypeCheck: !typeCheckFlag,
	}
	if dumpAST {
		opts.DumpAST = func(b *ast.Block) {
			fmt.Fprint(os.Stdout, ast.Dump(b))
		}
	}

	var result pipeline.Result[runtime.Value]
	switch {
	case evalExpr != "":
		result = runner.RunSource(evalExpr, opts)
	case len(args) == 1:
		result = runner.RunFile(args[0], opts)
	default:
		return fmt.Errorf("either provide a file path or use -e/--eval for inline code")
	}

	if !result.OK() {
		fmt.Fprintln(os.Stderr, result.Message())
		return &PipelineError{msg: result.Message()}
	}
	return nil
}

// traceLogger builds the runner's trace collaborator from --trace and the
// BRAID_DEBUG environment variable.
func traceLogger() *tracelog.Logger {
	return tracelog.New(os.Stderr, trace || tracelog.FromEnv())
}
