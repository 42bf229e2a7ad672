package cmd

import (
	"testing"
	"time"

	"github.com/neurocron/neurocron/internal/health"
)

func TestBuildDoctorReport(t *testing.T) {
	results := map[string]*health.Result{
		"config":   health.Healthy("configuration looks good").WithLatency(12 * time.Millisecond),
		"platform": health.Unhealthy("api unreachable").WithDetail("suggestion", "check the API URL"),
	}

	report := buildDoctorReport([]string{"config", "platform", "stream"}, results, health.StatusUnhealthy)

	if report.Status != "unhealthy" {
		t.Errorf("status = %q, want %q", report.Status, "unhealthy")
	}
	if report.Healthy {
		t.Error("report should not be healthy")
	}
	if len(report.Checks) != 2 {
		t.Fatalf("checks = %d, want 2 (names without results are skipped)", len(report.Checks))
	}
	if report.Checks[0].Name != "config" || report.Checks[1].Name != "platform" {
		t.Errorf("check order = [%s, %s], want [config, platform]", report.Checks[0].Name, report.Checks[1].Name)
	}
	if report.Checks[0].LatencyMS != 12 {
		t.Errorf("latency = %dms, want 12ms", report.Checks[0].LatencyMS)
	}
	if report.Checks[1].Details["suggestion"] != "check the API URL" {
		t.Errorf("suggestion detail not carried through: %v", report.Checks[1].Details)
	}
}

func TestBuildDoctorReportHealthy(t *testing.T) {
	results := map[string]*health.Result{
		"config": health.Healthy("ok"),
	}

	report := buildDoctorReport([]string{"config"}, results, health.StatusHealthy)

	if !report.Healthy {
		t.Error("report should be healthy")
	}
	if report.Status != "healthy" {
		t.Errorf("status = %q, want %q", report.Status, "healthy")
	}
}
