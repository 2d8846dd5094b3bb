package cli

import (
	"context"
	"fmt"

	"github.com/phildaponte/senior-strength/internal/daemon"
	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	notifyCmd.Flags().StringVar(&notifyTitle, "title", "Senior Strength", "Notification title")
	notifyCmd.Flags().StringVar(&notifyBody, "body", "", "Notification body (required)")
	_ = notifyCmd.MarkFlagRequired("body")
	rootCmd.AddCommand(notifyCmd)
}

var (
	notifyTitle string
	notifyBody  string
)

var notifyCmd = &cobra.Command{
	Use:   "notify <user-id>",
	Short: "Send a one-off push notification to a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotify,
}

func runNotify(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	user, err := d.DB.GetUser(args[0])
	if err != nil {
		return err
	}
	if user.PushToken == "" {
		return domain.ErrNoPushToken
	}

	msg := domain.PushMessage{
		Token: user.PushToken,
		Title: notifyTitle,
		Body:  notifyBody,
	}
	if err := d.Dispatcher.SendPush(context.Background(), msg); err != nil {
		return err
	}

	fmt.Printf("Sent to %s\n", user.DisplayName())
	return nil
}
