// Package cli implements the seniorstrength command-line interface using
// Cobra. Each subcommand maps to an engine capability (serve, progress,
// digest, scan, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seniorstrength",
	Short: "Senior Strength — progress scoring and notification engine",
	Long: `Senior Strength turns workout logs into streaks, levels, badges and
achievements, and keeps users and their trusted contacts in the loop with
push reminders and weekly email reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
