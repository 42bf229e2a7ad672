package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/platform"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run and inspect site audits",
	Long: `Run and inspect site audits for the selected organization.

An audit crawls a site, scores it, and reports findings grouped by
severity and category.

Subcommands:
  list  List past audit runs
  run   Start a new audit
  show  Show an audit run with its findings

Examples:
  neurocron audit list
  neurocron audit run https://example.com
  neurocron audit show run_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past audit runs",
	RunE:  runAuditList,
}

var auditRunCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Start a new audit",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditStart,
}

var auditShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show an audit run with its findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditShow,
}

func runAuditList(cmd *cobra.Command, args []string) error {
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

	runs, err := handle.client.ListAuditRuns(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No audit runs yet.")
		fmt.Println("\nStart one with: neurocron audit run <url>")
		return nil
	}

	for _, r := range runs {
		printAuditRun(&r, false)
		fmt.Println("---")
	}
	return nil
}

func runAuditStart(cmd *cobra.Command, args []string) error {
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

	run, err := handle.client.StartAudit(cmd.Context(), orgID, args[0])
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(run)
	}

	fmt.Println("Audit started.")
	printAuditRun(run, false)
	fmt.Printf("\nCheck progress with: neurocron audit show %s\n", run.ID)
	return nil
}

func runAuditShow(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	run, err := handle.client.GetAuditRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(run)
	}

	printAuditRun(run, true)
	return nil
}

func printAuditRun(r *platform.AuditRun, detailed bool) {
	fmt.Printf("ID:      %s\n", r.ID)
	fmt.Printf("URL:     %s\n", r.URL)
	fmt.Printf("Status:  %s\n", r.Status)
	if r.Status == "completed" {
		fmt.Printf("Score:   %d/100\n", r.Score)
	}
	if !r.StartedAt.IsZero() {
		fmt.Printf("Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	if !detailed {
		return
	}
	if len(r.Findings) == 0 {
		fmt.Println("\nNo findings.")
		return
	}
	fmt.Printf("\nFindings (%d):\n", len(r.Findings))
	for _, f := range r.Findings {
		fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Category, f.Message)
		if f.Page != "" {
			fmt.Printf("        page: %s\n", f.Page)
		}
	}
}

func init() {
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditRunCmd)
	auditCmd.AddCommand(auditShowCmd)

	rootCmd.AddCommand(auditCmd)
}
