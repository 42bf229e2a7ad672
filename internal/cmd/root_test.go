package cmd

import "testing"

func TestRootRegistersCommands(t *testing.T) {
	want := []string{
		"asset", "attribution", "audience", "audit", "auth", "billing",
		"campaign", "completion", "config", "copilot", "dashboard",
		"doctor", "intel", "notifications", "org", "version",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"api-url", "format", "verbose", "org"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}
