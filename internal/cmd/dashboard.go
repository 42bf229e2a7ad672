package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
	"github.com/neurocron/neurocron/internal/tui"
	"github.com/neurocron/neurocron/internal/ux"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the terminal dashboard",
	Long: `Open the interactive terminal dashboard: aggregate stats, recent
campaigns, live notifications, and the marketing copilot.

The dashboard waits for the stored session to restore, then requires an
authenticated user with an organization. Use --format json for a
machine-readable snapshot instead of the interactive view.

Examples:
  neurocron dashboard
  neurocron dashboard --format json`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		return printDashboardSnapshot(cmd, cmdCtx)
	}
	if !tui.IsInteractive() {
		return ux.NewErrorWithSuggestion(
			fmt.Errorf("the dashboard needs an interactive terminal"),
			"Use --format json for a machine-readable snapshot",
		)
	}

	return runTUI(cmd, cmdCtx, tui.ViewOverview)
}

func printDashboardSnapshot(cmd *cobra.Command, cmdCtx *CommandContext) error {
	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}

	dash, err := handle.client.GetDashboard(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	formatter, err := cmdCtx.NewFormatter()
	if err != nil {
		return err
	}
	return formatter.Format(dash)
}

// runTUI boots the session machinery, runs the dashboard program on
// the given start view, and translates the final model state into
// exit behavior. The copilot command reuses it for its chat view.
func runTUI(cmd *cobra.Command, cmdCtx *CommandContext, startView tui.ViewType) error {
	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	manager := session.NewManager(client, store, cmdCtx.Logger)

	// The adapter's guard gates the first render; restoration runs
	// behind it so the loading placeholder shows immediately.
	go func() {
		if err := manager.Restore(cmd.Context()); err != nil {
			cmdCtx.Logger.Warn("session restore failed", "error", err)
		}
	}()

	adapter := tui.NewAdapter(client, manager, store, cmdCtx.Logger)
	adapter.StartOn(startView)

	model, err := adapter.Run(cmd.Context())
	if err != nil {
		return err
	}

	if model.SessionState() == session.StateUnauthenticated {
		return errors.NewNotLoggedInError()
	}
	if hint := model.OrgHint(); hint != "" {
		fmt.Println(hint)
		return nil
	}
	if model.Revoked() {
		fmt.Println("Session ended: signed out in another terminal.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
