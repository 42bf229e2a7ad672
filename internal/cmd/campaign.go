package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/tui"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage marketing campaigns",
	Long: `Manage marketing campaigns for the selected organization.

Subcommands:
  list    List campaigns
  create  Create a new campaign
  show    Show campaign details

Examples:
  neurocron campaign list
  neurocron campaign create --name "Spring Launch" --objective leads --channel email
  neurocron campaign show cam_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	RunE:  runCampaignList,
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new campaign",
	Long: `Create a new campaign.

Missing fields are collected interactively when the terminal allows it.

Examples:
  neurocron campaign create
  neurocron campaign create --name "Spring Launch" --objective leads --channel email --budget 500`,
	RunE: runCampaignCreate,
}

var campaignShowCmd = &cobra.Command{
	Use:   "show <campaign-id>",
	Short: "Show campaign details",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignShow,
}

func runCampaignList(cmd *cobra.Command, args []string) error {
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

	campaigns, err := handle.client.ListCampaigns(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(campaigns)
	}

	if len(campaigns) == 0 {
		fmt.Println("No campaigns found.")
		fmt.Println("\nCreate one with: neurocron campaign create")
		return nil
	}

	for _, c := range campaigns {
		printCampaign(&c)
		fmt.Println("---")
	}
	return nil
}

func runCampaignCreate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	req := platform.CreateCampaignRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Objective, _ = cmd.Flags().GetString("objective")
	req.Channel, _ = cmd.Flags().GetString("channel")
	req.Budget, _ = cmd.Flags().GetFloat64("budget")

	if (req.Name == "" || req.Objective == "" || req.Channel == "") && tui.ShouldPrompt() {
		if err := tui.RunCampaignForm(&req); err != nil {
			return err
		}
	}
	if req.Name == "" {
		return fmt.Errorf("--name is required")
	}
	if req.Objective == "" {
		return fmt.Errorf("--objective is required")
	}
	if req.Channel == "" {
		return fmt.Errorf("--channel is required")
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}
	req.OrgID = orgID

	campaign, err := handle.client.CreateCampaign(cmd.Context(), req)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(campaign)
	}

	fmt.Println("Campaign created!")
	printCampaign(campaign)
	return nil
}

func runCampaignShow(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	campaign, err := handle.client.GetCampaign(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(campaign)
	}

	printCampaign(campaign)
	return nil
}

func printCampaign(c *platform.Campaign) {
	fmt.Printf("ID:        %s\n", c.ID)
	fmt.Printf("Name:      %s\n", c.Name)
	fmt.Printf("Status:    %s\n", c.Status)
	fmt.Printf("Channel:   %s\n", c.Channel)
	fmt.Printf("Objective: %s\n", c.Objective)
	if c.Budget > 0 {
		fmt.Printf("Budget:    $%.2f (spent $%.2f)\n", c.Budget, c.Spend)
	}
	if !c.CreatedAt.IsZero() {
		fmt.Printf("Created:   %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func init() {
	campaignCmd.AddCommand(campaignListCmd)
	campaignCmd.AddCommand(campaignCreateCmd)
	campaignCmd.AddCommand(campaignShowCmd)

	campaignCreateCmd.Flags().String("name", "", "Campaign name")
	campaignCreateCmd.Flags().String("objective", "", "Objective: awareness, traffic, leads, or conversions")
	campaignCreateCmd.Flags().String("channel", "", "Channel: email, social, search, or display")
	campaignCreateCmd.Flags().Float64("budget", 0, "Budget in USD")

	rootCmd.AddCommand(campaignCmd)
}
