package cli

import (
	"fmt"
	"time"

	"github.com/phildaponte/senior-strength/internal/daemon"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <user-id>",
	Short: "Recompute a user's streak counters from their full log history",
	Long: `Rebuild the current and longest streak from the workout log history
and overwrite the stored counters. Use after imports or manual edits.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Progress.Streaks().Reconcile(args[0], domain.DateOf(time.Now()))
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d\n", state.Current)
	fmt.Printf("Longest streak: %d\n", state.Longest)
	if !state.LastDate.IsZero() {
		fmt.Printf("Last workout:   %s\n", state.LastDate)
	}
	return nil
}
