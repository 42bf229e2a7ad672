package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/tui"
	"github.com/neurocron/neurocron/internal/ux"
)

var copilotCmd = &cobra.Command{
	Use:   "copilot [message]",
	Short: "Chat with the marketing copilot",
	Long: `Chat with the marketing copilot.

With a message argument the copilot answers once and exits. Without
one an interactive chat opens in the terminal.

Examples:
  neurocron copilot
  neurocron copilot "draft a welcome email for trial signups"
  neurocron copilot "why did conversions drop last week" --format json`,
	Args: cobra.ArbitraryArgs,
	RunE: runCopilot,
}

func runCopilot(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runCopilotChat(cmd, cmdCtx)
	}
	return runCopilotOneShot(cmd, cmdCtx, strings.Join(args, " "))
}

// runCopilotChat opens the dashboard directly on the chat view.
func runCopilotChat(cmd *cobra.Command, cmdCtx *CommandContext) error {
	if !tui.IsInteractive() {
		return ux.NewErrorWithSuggestion(
			fmt.Errorf("interactive chat needs a terminal"),
			"Pass the message as an argument: neurocron copilot \"your question\"",
		)
	}
	return runTUI(cmd, cmdCtx, tui.ViewCopilot)
}

func runCopilotOneShot(cmd *cobra.Command, cmdCtx *CommandContext, message string) error {
	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}

	resp, err := handle.client.SendChat(cmd.Context(), message, orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(resp)
	}

	fmt.Print(renderCopilotMarkdown(resp.Message))

	if len(resp.Actions) > 0 {
		fmt.Println("\nProposed actions:")
		for _, a := range resp.Actions {
			fmt.Printf("  - %s\n", a.Label)
		}
	}
	if len(resp.Suggestions) > 0 {
		fmt.Println("\nTry next:")
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

// renderCopilotMarkdown renders the reply as terminal markdown,
// falling back to the raw text when rendering fails.
func renderCopilotMarkdown(message string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return message + "\n"
	}
	out, err := renderer.Render(message)
	if err != nil {
		return message + "\n"
	}
	return out
}

func init() {
	rootCmd.AddCommand(copilotCmd)
}
