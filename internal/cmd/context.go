package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/config"
	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/log"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
	"github.com/neurocron/neurocron/internal/ux"
	"github.com/neurocron/neurocron/internal/version"
)

// CommandContext holds the resolved global flags and configuration for
// one command invocation. Commands build it in RunE instead of reading
// package-level state, so tests can construct one directly.
type CommandContext struct {
	APIURL  string
	Format  string
	Verbose bool
	Org     string

	Config *config.Config
	Logger *log.Logger
}

// NewCommandContext extracts the persistent flags and resolves the
// effective settings. Flags win over environment variables, which win
// over the config file (config.Load already folded env over file).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	apiURL, err := cmd.Flags().GetString("api-url")
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	org, err := cmd.Flags().GetString("org")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if apiURL == "" {
		apiURL = cfg.APIURL
	}
	if org == "" {
		org = cfg.DefaultOrg
	}

	return &CommandContext{
		APIURL:  apiURL,
		Format:  format,
		Verbose: verbose,
		Org:     org,
		Config:  cfg,
		Logger:  newLogger(cfg, verbose),
	}, nil
}

// Structured reports whether the user asked for machine-readable
// output.
func (c *CommandContext) Structured() bool {
	return c.Format == "json" || c.Format == "yaml"
}

// NewFormatter builds the output formatter selected by --format.
func (c *CommandContext) NewFormatter() (ux.Formatter, error) {
	return ux.NewFormatter(c.Format, nil)
}

// newLogger builds the command logger. Logs go to stderr so stdout
// stays clean for formatted output; --verbose forces debug level.
func newLogger(cfg *config.Config, verbose bool) *log.Logger {
	level := log.ParseLevel(cfg.LogLevel)
	if verbose {
		level = log.LevelDebug
	}
	return log.New(log.Config{
		Level:          level,
		Format:         log.ParseFormat(cfg.LogFormat),
		Output:         log.OutputStderr(),
		ServiceName:    "neurocron",
		ServiceVersion: version.Version,
	})
}

// sessionHandle bundles what an authenticated command needs.
type sessionHandle struct {
	client  *platform.Client
	manager *session.Manager
	store   *session.Store
}

// openSession restores the persisted session and blocks on the route
// guard. Every command behind the guard calls this first; an
// unauthenticated resolution comes back as a not-logged-in error so
// the process exits with an auth code.
func openSession(ctx context.Context, cmdCtx *CommandContext) (*sessionHandle, error) {
	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return nil, err
	}
	manager := session.NewManager(client, store, cmdCtx.Logger)
	guard := session.NewGuard(manager)

	restored := make(chan error, 1)
	go func() { restored <- manager.Restore(ctx) }()

	state, err := guard.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if state != session.StateAuthenticated {
		// Surface the restore failure (rejected token, unreadable
		// store) instead of a generic login hint.
		if rerr := <-restored; rerr != nil {
			return nil, rerr
		}
		return nil, errors.NewNotLoggedInError()
	}

	return &sessionHandle{client: client, manager: manager, store: store}, nil
}

// resolveOrgID picks the organization for org-scoped calls: --org (or
// the configured default) wins, then the session's resolved
// organization. A failed lookup is reported as such, never as "no
// organization selected".
func (h *sessionHandle) resolveOrgID(cmdCtx *CommandContext) (string, error) {
	if cmdCtx.Org != "" {
		return cmdCtx.Org, nil
	}
	if org := h.manager.Organization(); org != nil {
		return org.ID, nil
	}
	if err := h.manager.OrgErr(); err != nil {
		return "", err
	}
	return "", errors.NewOrgNotSelectedError()
}
