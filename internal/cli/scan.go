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
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the inactivity scan and send push reminders",
	Long: `Find users who have not logged a workout for 2 or more days and send
each one a reminder matched to how long they have been away.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	summary := d.Detector.Run(context.Background(), domain.DateOf(time.Now()))
	printRunSummary(summary)
	if !summary.Success {
		return fmt.Errorf("inactivity scan failed: %s", summary.Error)
	}
	return nil
}
