package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/neurocron/neurocron/internal/platform"
)

// LoginInput collects the fields for an interactive sign-in.
type LoginInput struct {
	Email    string
	Password string
}

// RunLoginForm prompts for whichever login fields are still empty.
func RunLoginForm(in *LoginInput) error {
	var fields []huh.Field

	if in.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@company.com").
			Validate(validateEmail).
			Value(&in.Email))
	}

	if in.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validateRequired("password")).
			Value(&in.Password))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	return nil
}

// RegisterInput collects the fields for an interactive registration.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// RunRegisterForm prompts for whichever registration fields are still
// empty.
func RunRegisterForm(in *RegisterInput) error {
	var fields []huh.Field

	if in.FullName == "" {
		fields = append(fields, huh.NewInput().
			Title("Full name").
			Validate(validateRequired("name")).
			Value(&in.FullName))
	}

	if in.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@company.com").
			Validate(validateEmail).
			Value(&in.Email))
	}

	if in.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validatePassword).
			Value(&in.Password))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	return nil
}

// Campaign form choices, matching the objectives and channels the
// platform accepts.
var (
	campaignObjectives = []string{"awareness", "traffic", "leads", "conversions"}
	campaignChannels   = []string{"email", "social", "search", "display"}
)

// RunCampaignForm prompts for the campaign fields not provided via
// flags and fills the request in place.
func RunCampaignForm(req *platform.CreateCampaignRequest) error {
	var fields []huh.Field
	var budget string

	if req.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Campaign name").
			Validate(validateRequired("name")).
			Value(&req.Name))
	}

	if req.Objective == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Objective").
			Options(huh.NewOptions(campaignObjectives...)...).
			Value(&req.Objective))
	}

	if req.Channel == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Channel").
			Options(huh.NewOptions(campaignChannels...)...).
			Value(&req.Channel))
	}

	if req.Budget == 0 {
		fields = append(fields, huh.NewInput().
			Title("Budget (USD, optional)").
			Placeholder("1000").
			Validate(validateBudget).
			Value(&budget))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	if budget != "" {
		value, err := strconv.ParseFloat(strings.TrimSpace(budget), 64)
		if err != nil {
			return fmt.Errorf("invalid budget: %w", err)
		}
		req.Budget = value
	}

	return nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func validateBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if value < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
