package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/platform"
)

var audienceCmd = &cobra.Command{
	Use:   "audience",
	Short: "Manage audience personas",
	Long: `Manage AI-generated audience personas for the selected organization.

Subcommands:
  list      List existing personas
  generate  Generate new personas from audience data

Examples:
  neurocron audience list
  neurocron audience generate --description "B2B SaaS buyers" --count 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var audienceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing personas",
	RunE:  runAudienceList,
}

var audienceGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new personas from audience data",
	Long: `Generate new personas from the organization's audience data.

The platform analyzes contact and engagement data and proposes
personas. Generation can take a few seconds.

Examples:
  neurocron audience generate
  neurocron audience generate --description "enterprise IT leads" --count 5`,
	RunE: runAudienceGenerate,
}

func runAudienceList(cmd *cobra.Command, args []string) error {
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

	personas, err := handle.client.ListPersonas(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(personas)
	}

	if len(personas) == 0 {
		fmt.Println("No personas yet.")
		fmt.Println("\nGenerate some with: neurocron audience generate")
		return nil
	}

	for _, p := range personas {
		printPersona(&p)
		fmt.Println("---")
	}
	return nil
}

func runAudienceGenerate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	req := platform.GeneratePersonasRequest{}
	req.Description, _ = cmd.Flags().GetString("description")
	req.Count, _ = cmd.Flags().GetInt("count")

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}
	req.OrgID = orgID

	personas, err := handle.client.GeneratePersonas(cmd.Context(), req)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(personas)
	}

	fmt.Printf("Generated %d persona(s).\n\n", len(personas))
	for _, p := range personas {
		printPersona(&p)
		fmt.Println("---")
	}
	return nil
}

func printPersona(p *platform.Persona) {
	fmt.Printf("ID:       %s\n", p.ID)
	fmt.Printf("Name:     %s\n", p.Name)
	if p.Summary != "" {
		fmt.Printf("Summary:  %s\n", p.Summary)
	}
	if len(p.Traits) > 0 {
		fmt.Printf("Traits:   %s\n", strings.Join(p.Traits, ", "))
	}
	if len(p.Channels) > 0 {
		fmt.Printf("Channels: %s\n", strings.Join(p.Channels, ", "))
	}
	if p.SegmentSize > 0 {
		fmt.Printf("Segment:  ~%d contacts\n", p.SegmentSize)
	}
}

func init() {
	audienceCmd.AddCommand(audienceListCmd)
	audienceCmd.AddCommand(audienceGenerateCmd)

	audienceGenerateCmd.Flags().String("description", "", "Describe the audience to target")
	audienceGenerateCmd.Flags().Int("count", 0, "Number of personas to generate")

	rootCmd.AddCommand(audienceCmd)
}
