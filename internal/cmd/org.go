package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
	Long: `Manage NeuroCron organizations.

Every campaign, asset, and report is scoped to an organization. Most
commands resolve the organization automatically; set a default with
'org use' or override per call with --org.

Subcommands:
  list    List your organizations
  create  Create a new organization
  use     Set the default organization

Examples:
  neurocron org list
  neurocron org create "Acme Marketing"
  neurocron org use org_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your organizations",
	RunE:  runOrgList,
}

var orgCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgCreate,
}

var orgUseCmd = &cobra.Command{
	Use:   "use <org-id>",
	Short: "Set the default organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgUse,
}

func runOrgList(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	orgs, err := handle.client.ListOrganizations(cmd.Context())
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(orgs)
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		fmt.Println("\nCreate one with: neurocron org create <name>")
		return nil
	}

	for _, o := range orgs {
		marker := ""
		if o.ID == cmdCtx.Config.DefaultOrg {
			marker = " (default)"
		}
		fmt.Printf("ID:   %s%s\n", o.ID, marker)
		fmt.Printf("Name: %s\n", o.Name)
		if o.Slug != "" {
			fmt.Printf("Slug: %s\n", o.Slug)
		}
		if o.Plan != "" {
			fmt.Printf("Plan: %s\n", o.Plan)
		}
		fmt.Println("---")
	}
	return nil
}

func runOrgCreate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	org, err := handle.client.CreateOrganization(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(org)
	}

	fmt.Println("Organization created!")
	fmt.Printf("ID:   %s\n", org.ID)
	fmt.Printf("Name: %s\n", org.Name)
	fmt.Printf("\nRun 'neurocron org use %s' to make it the default.\n", org.ID)
	return nil
}

func runOrgUse(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	cfg := cmdCtx.Config
	if err := cfg.Set("default_org", args[0]); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Default organization set: %s\n", args[0])
	return nil
}

func init() {
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgCreateCmd)
	orgCmd.AddCommand(orgUseCmd)

	rootCmd.AddCommand(orgCmd)
}
