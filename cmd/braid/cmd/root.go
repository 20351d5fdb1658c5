// Package cmd implements the braid CLI's Cobra command tree: a persistent
// --verbose flag, a run subcommand, a version subcommand, and a repl
// subcommand that is also the default when braid is invoked with no
// subcommand and no file argument.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version information; set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "braid",
	Short: "Braid interpreter",
	Long: `braid is an interpreter for a small Python-inspired expression
language: brace-delimited blocks, closures, mutable variables, mutual
recursion, and bidirectional static type inference.

Running braid with no subcommand and no file argument starts the REPL.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRepl(c, args)
		}
		return runScript(c, args)
	},
}

// Execute runs the root command. Its error, if any, is either a
// *PipelineError (a stage of the interpreter failed — exit code 1) or an
// ordinary Cobra usage error (exit code 2).
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace the runner's stage execution (for debugging)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}
