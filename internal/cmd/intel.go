package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neurocron/neurocron/internal/platform"
)

var intelCmd = &cobra.Command{
	Use:   "intel",
	Short: "Competitive and market intelligence",
	Long: `Competitive and market intelligence for the selected organization.

Run without a subcommand for the combined briefing: tracked
competitors and recent insights are fetched concurrently and rendered
together.

Subcommands:
  competitors  Tracked competitors
  insights     Recent market insights
  brand        Brand profile

Examples:
  neurocron intel
  neurocron intel competitors
  neurocron intel brand --format json`,
	RunE: runIntelBriefing,
}

var intelCompetitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "Tracked competitors",
	RunE:  runIntelCompetitors,
}

var intelInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Recent market insights",
	RunE:  runIntelInsights,
}

var intelBrandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Brand profile",
	RunE:  runIntelBrand,
}

type intelReport struct {
	Competitors []platform.Competitor `json:"competitors"`
	Insights    []platform.Insight    `json:"insights"`
}

func runIntelBriefing(cmd *cobra.Command, args []string) error {
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

	var report intelReport
	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		competitors, err := handle.client.ListCompetitors(gctx, orgID)
		if err != nil {
			return err
		}
		report.Competitors = competitors
		return nil
	})
	g.Go(func() error {
		insights, err := handle.client.ListInsights(gctx, orgID)
		if err != nil {
			return err
		}
		report.Insights = insights
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

	printCompetitors(report.Competitors)
	fmt.Println()
	printInsights(report.Insights)
	return nil
}

func runIntelCompetitors(cmd *cobra.Command, args []string) error {
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

	competitors, err := handle.client.ListCompetitors(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(competitors)
	}

	printCompetitors(competitors)
	return nil
}

func runIntelInsights(cmd *cobra.Command, args []string) error {
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

	insights, err := handle.client.ListInsights(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(insights)
	}

	printInsights(insights)
	return nil
}

func runIntelBrand(cmd *cobra.Command, args []string) error {
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

	profile, err := handle.client.GetBrandProfile(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(profile)
	}

	fmt.Printf("Voice:      %s\n", profile.Voice)
	if len(profile.Keywords) > 0 {
		fmt.Printf("Keywords:   %s\n", strings.Join(profile.Keywords, ", "))
	}
	fmt.Printf("Sentiment:  %s\n", sentimentLabel(profile.Sentiment))
	fmt.Printf("Mentions:   %d in the last 30 days\n", profile.Mentions30)
	return nil
}

func printCompetitors(competitors []platform.Competitor) {
	if len(competitors) == 0 {
		fmt.Println("No competitors tracked yet.")
		return
	}
	fmt.Printf("Competitors (%d):\n", len(competitors))
	for _, c := range competitors {
		fmt.Printf("  %-20s %-24s spend $%.0f/mo  voice %.1f%%\n",
			c.Name, c.Domain, c.AdSpend, c.ShareOfVoice*100)
	}
}

func printInsights(insights []platform.Insight) {
	if len(insights) == 0 {
		fmt.Println("No insights yet.")
		return
	}
	fmt.Printf("Insights (%d):\n", len(insights))
	for _, in := range insights {
		fmt.Printf("  [%s] %s\n", in.Severity, in.Title)
		if in.Body != "" {
			fmt.Printf("        %s\n", in.Body)
		}
	}
}

// sentimentLabel folds the -1..1 sentiment score into a word plus the
// raw value, so text output stays readable without a chart.
func sentimentLabel(score float64) string {
	label := "neutral"
	switch {
	case score >= 0.3:
		label = "positive"
	case score <= -0.3:
		label = "negative"
	}
	return fmt.Sprintf("%s (%.2f)", label, score)
}

func init() {
	intelCmd.AddCommand(intelCompetitorsCmd)
	intelCmd.AddCommand(intelInsightsCmd)
	intelCmd.AddCommand(intelBrandCmd)

	rootCmd.AddCommand(intelCmd)
}
