package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/notify"
	"github.com/neurocron/neurocron/internal/platform"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List, watch, and manage notifications",
	Long: `List, watch, and manage notifications for the selected organization.

Subcommands:
  list      List notifications
  watch     Stream notifications live
  read      Mark one notification read
  read-all  Mark every notification read
  delete    Delete a notification

Examples:
  neurocron notifications list
  neurocron notifications watch
  neurocron notifications read ntf_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  runNotificationsList,
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications live",
	Long: `Stream notifications live over the platform's event stream.

Each pushed notification is printed as it arrives. Stop with Ctrl+C.`,
	RunE: runNotificationsWatch,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark one notification read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationsRead,
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	RunE:  runNotificationsReadAll,
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <notification-id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationsDelete,
}

// openCenter opens a session and returns a notification center already
// loaded with the server's current view.
func openCenter(cmd *cobra.Command, cmdCtx *CommandContext) (*notify.Center, error) {
	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return nil, err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return nil, err
	}

	center := notify.NewCenter(handle.client, orgID, cmdCtx.Logger)
	if err := center.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return center, nil
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	center, err := openCenter(cmd, cmdCtx)
	if err != nil {
		return err
	}
	notifications := center.List()

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(notifications)
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	for _, n := range notifications {
		fmt.Println(notificationLine(&n))
	}
	if unread := center.Unread(); unread > 0 {
		fmt.Printf("\n%d unread. Mark them with: neurocron notifications read-all\n", unread)
	}
	return nil
}

func runNotificationsWatch(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}

	stream := notify.NewStream(handle.client, orgID, cmdCtx.Logger)
	if err := stream.Connect(cmd.Context()); err != nil {
		return errors.NewStreamConnectError(err)
	}
	defer stream.Close()

	fmt.Println("Watching for notifications. Stop with Ctrl+C.")
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case n, ok := <-stream.Events():
			if !ok {
				return nil
			}
			fmt.Println(notificationLine(&n))
		}
	}
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	center, err := openCenter(cmd, cmdCtx)
	if err != nil {
		return err
	}
	if err := center.MarkRead(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Marked read: %s\n", args[0])
	return nil
}

func runNotificationsReadAll(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	center, err := openCenter(cmd, cmdCtx)
	if err != nil {
		return err
	}

	unread := center.Unread()
	if unread == 0 {
		fmt.Println("No unread notifications.")
		return nil
	}
	if err := center.MarkAllRead(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("Marked %d notification(s) read.\n", unread)
	return nil
}

func runNotificationsDelete(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	center, err := openCenter(cmd, cmdCtx)
	if err != nil {
		return err
	}
	if err := center.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted: %s\n", args[0])
	return nil
}

// notificationLine renders one notification for the terminal. Unread
// entries get a filled marker.
func notificationLine(n *platform.Notification) string {
	icon := "○"
	if !n.Read {
		icon = "●"
	}
	line := fmt.Sprintf("%s [%s] %s", icon, n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
	if n.Message != "" {
		line += "\n    " + n.Message
	}
	return line
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)

	rootCmd.AddCommand(notificationsCmd)
}
