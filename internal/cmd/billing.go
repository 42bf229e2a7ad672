package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/platform"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Plans, subscription, and usage",
	Long: `Inspect plans, the current subscription, and metered usage.

Checkout and the billing portal are browser flows: the command prints
a URL to open.

Subcommands:
  plans         List available plans
  subscription  Show the current subscription
  usage         Show usage against plan limits
  checkout      Start a plan upgrade
  portal        Open the billing portal

Examples:
  neurocron billing plans
  neurocron billing usage
  neurocron billing checkout --plan growth`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var billingPlansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List available plans",
	RunE:  runBillingPlans,
}

var billingSubscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Show the current subscription",
	RunE:  runBillingSubscription,
}

var billingUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show usage against plan limits",
	RunE:  runBillingUsage,
}

var billingCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Start a plan upgrade",
	RunE:  runBillingCheckout,
}

var billingPortalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Open the billing portal",
	RunE:  runBillingPortal,
}

func runBillingPlans(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	// Plans are public, no session needed.
	client := platform.NewClient(cmdCtx.APIURL)
	plans, err := client.ListPlans(cmd.Context())
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(plans)
	}

	for _, p := range plans {
		fmt.Printf("%s (%s)\n", p.Name, p.ID)
		fmt.Printf("  $%.0f/month\n", p.PriceMonthly)
		if len(p.Features) > 0 {
			fmt.Printf("  %s\n", strings.Join(p.Features, ", "))
		}
		fmt.Println("---")
	}
	return nil
}

func runBillingSubscription(cmd *cobra.Command, args []string) error {
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

	sub, err := handle.client.GetSubscription(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(sub)
	}

	fmt.Printf("Plan:       %s\n", sub.PlanID)
	fmt.Printf("Status:     %s\n", sub.Status)
	if sub.CurrentPeriodEnd != "" {
		fmt.Printf("Period end: %s\n", sub.CurrentPeriodEnd)
	}
	if sub.CancelAtEnd {
		fmt.Println("Cancels at the end of the current period.")
	}
	return nil
}

func runBillingUsage(cmd *cobra.Command, args []string) error {
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

	usage, err := handle.client.GetUsage(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(usage)
	}

	fmt.Println(usageLine("Campaigns", usage.CampaignsUsed, usage.CampaignsLimit))
	fmt.Println(usageLine("Copilot messages", usage.CopilotMessages, usage.CopilotLimit))
	fmt.Println(usageLine("Audit runs", usage.AuditRunsUsed, usage.AuditRunsLimit))
	return nil
}

func runBillingCheckout(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	planID, _ := cmd.Flags().GetString("plan")
	if planID == "" {
		return fmt.Errorf("--plan is required")
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}

	session, err := handle.client.CreateCheckout(cmd.Context(), orgID, planID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(session)
	}

	fmt.Printf("Open this URL to complete checkout:\n\n  %s\n", session.URL)
	return nil
}

func runBillingPortal(cmd *cobra.Command, args []string) error {
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

	session, err := handle.client.CreatePortal(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(session)
	}

	fmt.Printf("Open this URL to manage billing:\n\n  %s\n", session.URL)
	return nil
}

// usageLine renders one metered counter. A limit of zero or below
// means the plan does not cap the metric.
func usageLine(name string, used, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("%-18s %d (unlimited)", name+":", used)
	}
	return fmt.Sprintf("%-18s %d of %d", name+":", used, limit)
}

func init() {
	billingCmd.AddCommand(billingPlansCmd)
	billingCmd.AddCommand(billingSubscriptionCmd)
	billingCmd.AddCommand(billingUsageCmd)
	billingCmd.AddCommand(billingCheckoutCmd)
	billingCmd.AddCommand(billingPortalCmd)

	billingCheckoutCmd.Flags().String("plan", "", "Plan ID to upgrade to")

	rootCmd.AddCommand(billingCmd)
}
