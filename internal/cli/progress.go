package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/phildaponte/senior-strength/internal/daemon"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress <user-id>",
	Short: "Show a user's full progress summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	summary, err := d.Progress.Summarize(args[0], domain.DateOf(time.Now()))
	if err != nil {
		return err
	}

	s := summary.Stats
	fmt.Printf("Level %d (%d/%d XP)\n", summary.Level.Level, summary.Level.XP, summary.Level.NextLevelXP)
	fmt.Printf("%s\n\n", summary.Message)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Workouts\t%d\n", s.TotalWorkouts)
	fmt.Fprintf(w, "Minutes\t%d\n", s.TotalMinutes)
	fmt.Fprintf(w, "This week\t%d\n", s.ThisWeekWorkouts)
	fmt.Fprintf(w, "This month\t%d\n", s.ThisMonthWorkouts)
	fmt.Fprintf(w, "Current streak\t%d\n", s.CurrentStreak)
	fmt.Fprintf(w, "Longest streak\t%d\n", s.LongestStreak)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nBadges:")
	for _, b := range summary.Badges {
		mark := " "
		if b.Earned {
			mark = "x"
		}
		fmt.Printf("  [%s] %s %s\n", mark, b.Emoji, b.Name)
	}

	fmt.Println("\nAchievements:")
	for _, a := range summary.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Printf("  [%s] %s (%d/%d, %d%%)\n", mark, a.Title, a.Progress, a.Target, a.CompletionPct())
	}
	return nil
}
