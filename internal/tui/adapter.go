package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neurocron/neurocron/internal/log"
	"github.com/neurocron/neurocron/internal/notify"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
)

// Adapter bridges between the session machinery and the dashboard
// program. Everything that happens outside the Bubble Tea event loop,
// the guard resolution, the notification stream, and the credential
// watch, lands here and is forwarded as messages.
type Adapter struct {
	client  *platform.Client
	manager *session.Manager
	guard   *session.Guard
	store   *session.Store
	logger  *log.Logger

	program   *tea.Program
	center    *notify.Center
	stream    *notify.Stream
	watcher   *session.Watcher
	startView ViewType
}

// NewAdapter creates a dashboard adapter. The manager is expected to be
// restoring already; the guard gates the first render.
func NewAdapter(client *platform.Client, manager *session.Manager, store *session.Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		client:  client,
		manager: manager,
		guard:   session.NewGuard(manager),
		store:   store,
		logger:  logger.With("component", "tui"),
	}
}

// StartOn sets the view the dashboard opens on. The default is the
// overview; the copilot command opens straight into the chat.
func (a *Adapter) StartOn(v ViewType) {
	a.startView = v
}

// Run starts the dashboard and blocks until it exits. The returned
// model carries the final session state so the caller can pick the
// right exit hint.
func (a *Adapter) Run(ctx context.Context) (Model, error) {
	model := NewModel(a.client, a.manager)
	if a.startView != ViewOverview {
		model.currentView = a.startView
		if a.startView == ViewCopilot {
			model.chatInput.Focus()
		}
	}
	a.program = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	go a.resolveSession(ctx)

	final, err := a.program.Run()
	a.shutdown()

	if m, ok := final.(Model); ok {
		return m, err
	}
	return model, err
}

// resolveSession waits for the route guard, then wires the notification
// center, the live stream, and the credential watch for the resolved
// organization.
func (a *Adapter) resolveSession(ctx context.Context) {
	state, err := a.guard.Wait(ctx)
	if err != nil {
		return
	}
	a.program.Send(SessionResolvedMsg{State: state})
	if state != session.StateAuthenticated {
		return
	}

	org := a.manager.Organization()
	if org == nil {
		hint := "Create one with 'neurocron org create <name>' and relaunch the dashboard."
		if a.manager.OrgErr() != nil {
			hint = "Organization lookup failed. Run 'neurocron doctor' and try again."
		}
		a.program.Send(NoOrganizationMsg{Hint: hint})
		return
	}

	a.center = notify.NewCenter(a.client, org.ID, a.logger)
	a.stream = notify.NewStream(a.client, org.ID, a.logger)
	a.center.Attach(a.stream)
	a.center.OnChange(func() {
		a.program.Send(NotificationsChangedMsg{})
	})

	if err := a.stream.Connect(ctx); err != nil {
		a.logger.Warn("notification stream unavailable", "error", err)
	} else {
		go a.pumpStream()
	}

	if err := a.center.Load(ctx); err != nil {
		a.program.Send(LoadFailedMsg{Err: err})
	}
	a.program.Send(CenterReadyMsg{Center: a.center})

	a.watchCredentials()
}

// pumpStream feeds pushed notifications into the center until the
// stream closes.
func (a *Adapter) pumpStream() {
	for n := range a.stream.Events() {
		a.center.Add(n)
	}
}

// watchCredentials stops the dashboard when the credential file is
// removed by a logout in another terminal.
func (a *Adapter) watchCredentials() {
	w, err := session.NewWatcher(a.store, a.logger)
	if err != nil {
		a.logger.Warn("credential watch unavailable", "error", err)
		return
	}
	a.watcher = w

	go func() {
		for range w.Removed() {
			a.program.Send(SessionRevokedMsg{})
		}
	}()
}

func (a *Adapter) shutdown() {
	if a.stream != nil {
		a.stream.Close()
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}
