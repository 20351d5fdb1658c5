package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("braid version %s\n", Version)
		fmt.Printf("git commit: %s\n", GitCommit)
		fmt.Printf("build date: %s\n", BuildDate)
	},
}
