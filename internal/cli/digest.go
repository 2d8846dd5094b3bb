package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/phildaponte/senior-strength/internal/daemon"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	digestCmd.Flags().StringVar(&digestUser, "user", "", "Run for a single user only (test mode)")
	rootCmd.AddCommand(digestCmd)
}

var digestUser string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Compose and send the weekly digest emails",
	Long: `Build the trailing-week report for every user with a trusted contact
and email it. With --user, runs the full pipeline for that one user only.`,
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	today := domain.DateOf(time.Now())

	var summary domain.RunSummary
	if digestUser != "" {
		summary = d.Digests.RunOne(context.Background(), digestUser, today)
	} else {
		summary = d.Digests.RunAll(context.Background(), today)
	}

	printRunSummary(summary)
	if !summary.Success {
		return fmt.Errorf("digest run failed: %s", summary.Error)
	}
	return nil
}

func printRunSummary(summary domain.RunSummary) {
	fmt.Printf("Processed %d user(s)\n", summary.Processed)
	for _, r := range summary.Results {
		status := "sent"
		if !r.Sent {
			status = "failed: " + r.Error
		}
		line := fmt.Sprintf("  %s", r.UserID)
		if r.Recipient != "" {
			line += " -> " + r.Recipient
		}
		if r.Message != "" {
			line += " (" + r.Message + ")"
		}
		fmt.Printf("%s [%s]\n", line, status)
	}
}
