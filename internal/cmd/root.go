package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "neurocron",
	Short: "AI-Native Marketing Automation Platform CLI",
	Long: `neurocron is the command-line client for the NeuroCron marketing
platform. It manages your session, organizations, campaigns, creative
assets, attribution analytics, audiences, site audits, competitive
intelligence, and billing, and ships a terminal dashboard with live
notifications and the marketing copilot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context so a
// Ctrl+C reaches every in-flight request.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Platform API base URL (default "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("org", "", "Organization ID override for org-scoped commands")
}
