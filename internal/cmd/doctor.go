package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/health"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common problems",
	Long: `Diagnose common problems with the local setup and the platform.

Checks the configuration, stored credentials, platform reachability,
and the notification stream. The command exits non-zero only when a
check is unhealthy; degraded checks are warnings.

Examples:
  neurocron doctor
  neurocron doctor --format json`,
	RunE: runDoctor,
}

// DoctorReport is the serializable result of all diagnostics.
type DoctorReport struct {
	Status  string        `json:"status" yaml:"status"`
	Healthy bool          `json:"healthy" yaml:"healthy"`
	Checks  []DoctorCheck `json:"checks" yaml:"checks"`
}

// DoctorCheck is one diagnostic in the report.
type DoctorCheck struct {
	Name      string                 `json:"name" yaml:"name"`
	Status    string                 `json:"status" yaml:"status"`
	Message   string                 `json:"message" yaml:"message"`
	LatencyMS int64                  `json:"latency_ms" yaml:"latency_ms"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	// Best effort: an authenticated client lets the stream check run
	// for real. A missing or broken credentials file is itself a
	// finding, not a reason to stop.
	if creds, err := store.Load(); err == nil && creds.AccessToken != "" {
		client.SetToken(creds.AccessToken)
	}

	manager := health.NewManager()
	manager.AddChecker(health.NewConfigChecker())
	manager.AddChecker(health.NewCredentialsChecker(store))
	manager.AddChecker(health.NewPlatformChecker(client))
	manager.AddChecker(health.NewStreamChecker(client, cmdCtx.Org))

	results := manager.Check(cmd.Context())
	overall := manager.OverallStatus(results)
	report := buildDoctorReport(manager.CheckNames(), results, overall)

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		if err := formatter.Format(report); err != nil {
			return err
		}
	} else {
		printDoctorReport(report)
	}

	if overall == health.StatusUnhealthy {
		return fmt.Errorf("system health check failed")
	}
	return nil
}

// buildDoctorReport flattens checker results into the report, keeping
// the registration order so output is stable between runs.
func buildDoctorReport(order []string, results map[string]*health.Result, overall health.Status) *DoctorReport {
	report := &DoctorReport{
		Status:  overall.String(),
		Healthy: overall == health.StatusHealthy,
	}
	for _, name := range order {
		result, ok := results[name]
		if !ok {
			continue
		}
		report.Checks = append(report.Checks, DoctorCheck{
			Name:      name,
			Status:    result.Status.String(),
			Message:   result.Message,
			LatencyMS: result.Latency.Milliseconds(),
			Details:   result.Details,
		})
	}
	return report
}

func printDoctorReport(report *DoctorReport) {
	fmt.Println("NeuroCron doctor")
	fmt.Println()
	for _, check := range report.Checks {
		printDoctorCheck(&check)
	}
	fmt.Println()
	fmt.Printf("Overall: %s\n", report.Status)
}

func printDoctorCheck(check *DoctorCheck) {
	icon := "✓"
	switch check.Status {
	case health.StatusDegraded.String():
		icon = "⚠"
	case health.StatusUnhealthy.String():
		icon = "✗"
	}
	fmt.Printf("%s %-14s %s\n", icon, check.Name, check.Message)
	if suggestion, ok := check.Details["suggestion"].(string); ok && check.Status != health.StatusHealthy.String() {
		fmt.Printf("  %s\n", suggestion)
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
