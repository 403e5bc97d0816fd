// Package cli defines Cobra command definitions for the vibe CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "vibe",
	Short: "Track the phases of a vibe coding session",
	Long: `vibe tracks a development session through its phases
(exploring, validating, structuring, reviewing, shipped), keeps a log of
what you did, remembers the shortcuts you owe a cleanup for, and reminds
you when you have stayed in one phase too long.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError carries a process exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory (default: current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(clearDebtCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
}
