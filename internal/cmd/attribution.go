package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neurocron/neurocron/internal/platform"
)

var attributionCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Inspect revenue attribution",
	Long: `Inspect revenue attribution for the selected organization.

Run without a subcommand for the combined report: the channel
overview and recent customer journeys are fetched concurrently and
rendered together.

Subcommands:
  overview  Channel revenue breakdown
  journeys  Recent customer journeys

Examples:
  neurocron attribution
  neurocron attribution overview
  neurocron attribution journeys --format json`,
	RunE: runAttributionReport,
}

var attributionOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Channel revenue breakdown",
	RunE:  runAttributionOverview,
}

var attributionJourneysCmd = &cobra.Command{
	Use:   "journeys",
	Short: "Recent customer journeys",
	RunE:  runAttributionJourneys,
}

type attributionReport struct {
	Overview *platform.AttributionOverview `json:"overview"`
	Journeys []platform.Journey            `json:"journeys"`
}

func runAttributionReport(cmd *cobra.Command, args []string) error {
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

	var report attributionReport
	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		overview, err := handle.client.GetAttributionOverview(gctx, orgID)
		if err != nil {
			return err
		}
		report.Overview = overview
		return nil
	})
	g.Go(func() error {
		journeys, err := handle.client.ListJourneys(gctx, orgID)
		if err != nil {
			return err
		}
		report.Journeys = journeys
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(report)
	}

	printAttributionOverview(report.Overview)
	fmt.Println()
	printJourneys(report.Journeys)
	return nil
}

func runAttributionOverview(cmd *cobra.Command, args []string) error {
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

	overview, err := handle.client.GetAttributionOverview(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(overview)
	}

	printAttributionOverview(overview)
	return nil
}

func runAttributionJourneys(cmd *cobra.Command, args []string) error {
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

	journeys, err := handle.client.ListJourneys(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(journeys)
	}

	printJourneys(journeys)
	return nil
}

func printAttributionOverview(o *platform.AttributionOverview) {
	fmt.Printf("Attribution model: %s\n", o.Model)
	fmt.Printf("Attributed revenue: $%.2f\n", o.Revenue)
	if len(o.Channels) == 0 {
		fmt.Println("\nNo channel data yet.")
		return
	}
	fmt.Println()
	for _, ch := range o.Channels {
		fmt.Printf("%-12s $%10.2f  %4d conversions  %5.1f%%\n",
			ch.Channel, ch.Revenue, ch.Conversions, ch.Share*100)
	}
}

func printJourneys(journeys []platform.Journey) {
	if len(journeys) == 0 {
		fmt.Println("No journeys recorded yet.")
		return
	}
	for _, j := range journeys {
		fmt.Printf("Journey %s (contact %s)\n", j.ID, j.ContactID)
		fmt.Printf("  Path:    %s\n", journeyPath(j.Touchpoints))
		fmt.Printf("  Outcome: %s\n", journeyOutcome(&j))
		fmt.Println("---")
	}
}

// journeyPath renders the touchpoint sequence as a single line.
func journeyPath(touchpoints []string) string {
	if len(touchpoints) == 0 {
		return "(no touchpoints)"
	}
	return strings.Join(touchpoints, " > ")
}

func journeyOutcome(j *platform.Journey) string {
	if !j.Converted {
		return "not converted"
	}
	return fmt.Sprintf("converted $%.2f", j.Revenue)
}

func init() {
	attributionCmd.AddCommand(attributionOverviewCmd)
	attributionCmd.AddCommand(attributionJourneysCmd)

	rootCmd.AddCommand(attributionCmd)
}
