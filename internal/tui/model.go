package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/neurocron/neurocron/internal/notify"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewOverview shows aggregate stats and recent campaigns
	ViewOverview ViewType = iota
	// ViewCampaigns lists all campaigns
	ViewCampaigns
	// ViewNotifications shows the notification center
	ViewNotifications
	// ViewCopilot is the marketing copilot chat
	ViewCopilot
	// ViewHelp is the help screen
	ViewHelp
)

const (
	// chatHistoryWindow caps how many chat entries stay on screen.
	chatHistoryWindow = 8
	// chatWrapWidth is the glamour word-wrap width for copilot replies.
	chatWrapWidth = 80
	// headerRefresh re-renders the header so the live/offline indicator
	// tracks the stream without a notification arriving.
	headerRefresh = 5 * time.Second
)

const (
	roleYou     = "you"
	roleCopilot = "copilot"
)

// chatEntry is one turn of the copilot conversation.
type chatEntry struct {
	role    string
	content string
	at      time.Time
}

// Model represents the dashboard application state
type Model struct {
	// Session state
	client       *platform.Client
	manager      *session.Manager
	center       *notify.Center
	sessionState session.State
	orgHint      string
	revoked      bool

	// Dashboard data
	dashboard       *platform.Dashboard
	campaigns       []platform.Campaign
	campaignsLoaded bool

	// Notifications state
	cursor int

	// Copilot state
	chatInput   textinput.Model
	chat        []chatEntry
	suggestions []string
	suggestion  int
	thinking    bool
	renderer    *glamour.TermRenderer

	// UI state
	currentView ViewType
	prevView    ViewType
	spinner     spinner.Model
	width       int
	height      int
	ready       bool
	quitting    bool

	// Error state
	lastError string

	// Styles
	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Muted       lipgloss.Style
	Border      lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	Key         lipgloss.Style
	KeyDesc     lipgloss.Style
}

// NewModel creates a new dashboard model. The session is expected to be
// restoring in the background; the model waits for SessionResolvedMsg.
func NewModel(client *platform.Client, manager *session.Manager) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	ti := textinput.New()
	ti.Placeholder = "Ask about campaigns, audiences, or performance..."
	ti.Prompt = "> "
	ti.CharLimit = 2048

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWrapWidth),
	)

	return Model{
		client:       client,
		manager:      manager,
		sessionState: session.StateLoading,
		currentView:  ViewOverview,
		suggestion:   -1,
		spinner:      sp,
		chatInput:    ti,
		renderer:     renderer,
		styles:       styles,
	}
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(1, 2),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).  // Purple
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// Init initializes the dashboard model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, headerTick())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 4; w > 0 && w < m.chatInput.CharLimit {
			m.chatInput.Width = w
		}
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case headerTickMsg:
		return m, headerTick()

	case SessionResolvedMsg:
		m.sessionState = msg.State
		if msg.State == session.StateUnauthenticated {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case NoOrganizationMsg:
		m.orgHint = msg.Hint
		m.quitting = true
		return m, tea.Quit

	case CenterReadyMsg:
		m.center = msg.Center
		return m, tea.Batch(m.loadDashboard(), m.loadCampaigns())

	case DashboardLoadedMsg:
		m.dashboard = msg.Dashboard
		return m, nil

	case CampaignsLoadedMsg:
		m.campaigns = msg.Campaigns
		m.campaignsLoaded = true
		return m, nil

	case NotificationsChangedMsg:
		m.clampCursor()
		return m, nil

	case ChatReplyMsg:
		m.thinking = false
		m.chat = append(m.chat, chatEntry{role: roleCopilot, content: msg.Reply.Message, at: time.Now()})
		m.suggestions = msg.Reply.Suggestions
		m.suggestion = -1
		return m, nil

	case LoadFailedMsg:
		m.thinking = false
		m.lastError = msg.Err.Error()
		return m, nil

	case SessionRevokedMsg:
		m.revoked = true
		m.quitting = true
		return m, tea.Quit
	}

	// Everything else (cursor blink and friends) goes to the chat input.
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// View renders the dashboard (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return m.renderGoodbye()
	}

	if m.sessionState == session.StateLoading {
		return m.renderRestoring()
	}

	switch m.currentView {
	case ViewOverview:
		return m.renderOverview()
	case ViewCampaigns:
		return m.renderCampaigns()
	case ViewNotifications:
		return m.renderNotifications()
	case ViewCopilot:
		return m.renderCopilot()
	case ViewHelp:
		return m.renderHelp()
	default:
		return "Unknown view"
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.ready || m.sessionState != session.StateAuthenticated {
		return m, nil
	}

	// A focused chat input swallows printable keys.
	if m.currentView == ViewCopilot && m.chatInput.Focused() {
		return m.handleChatKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		next := nextView(m.currentView)
		if next == ViewCopilot {
			return m.enterCopilot()
		}
		m.currentView = next

	case "1":
		m.currentView = ViewOverview

	case "2":
		m.currentView = ViewCampaigns

	case "3":
		m.currentView = ViewNotifications

	case "4":
		return m.enterCopilot()

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.prevView
		} else {
			m.prevView = m.currentView
			m.currentView = ViewHelp
		}

	case "esc":
		m.currentView = ViewOverview

	case "r":
		return m, tea.Batch(m.loadDashboard(), m.loadCampaigns(), m.reloadNotifications())

	case "up", "k":
		if m.currentView == ViewNotifications && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.currentView == ViewNotifications && m.cursor < len(m.recent())-1 {
			m.cursor++
		}

	case "enter":
		if m.currentView == ViewNotifications {
			return m, m.markSelectedRead()
		}

	case "a":
		if m.currentView == ViewNotifications {
			return m, m.markAllRead()
		}

	case "d":
		if m.currentView == ViewNotifications {
			return m, m.deleteSelected()
		}
	}

	return m, nil
}

// handleChatKey handles input while the copilot prompt is focused.
// Tab and Esc leave the prompt; Up/Down cycle the server's suggestions
// into it.
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.chatInput.Blur()
		m.currentView = ViewOverview
		return m, nil

	case "enter":
		content := strings.TrimSpace(m.chatInput.Value())
		if content == "" || m.thinking {
			return m, nil
		}
		m.chatInput.SetValue("")
		m.chat = append(m.chat, chatEntry{role: roleYou, content: content, at: time.Now()})
		m.thinking = true
		m.suggestion = -1
		return m, m.sendChat(content)

	case "up":
		if len(m.suggestions) > 0 && m.suggestion < len(m.suggestions)-1 {
			m.suggestion++
			m.chatInput.SetValue(m.suggestions[m.suggestion])
			m.chatInput.CursorEnd()
		}
		return m, nil

	case "down":
		if m.suggestion >= 0 {
			m.suggestion--
			if m.suggestion < 0 {
				m.chatInput.SetValue("")
			} else {
				m.chatInput.SetValue(m.suggestions[m.suggestion])
				m.chatInput.CursorEnd()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) enterCopilot() (tea.Model, tea.Cmd) {
	m.currentView = ViewCopilot
	m.chatInput.Focus()
	return m, textinput.Blink
}

// SessionState reports the resolution the model observed. The dashboard
// command inspects it after the program exits to pick its exit hint.
func (m Model) SessionState() session.State {
	return m.sessionState
}

// OrgHint returns the hint shown when the session resolved without a
// usable organization, or empty.
func (m Model) OrgHint() string {
	return m.orgHint
}

// Revoked reports whether the credential file vanished underneath the
// running dashboard.
func (m Model) Revoked() bool {
	return m.revoked
}

// Commands

func (m Model) loadDashboard() tea.Cmd {
	client, orgID := m.client, m.orgID()
	return func() tea.Msg {
		dash, err := client.GetDashboard(context.Background(), orgID)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return DashboardLoadedMsg{Dashboard: dash}
	}
}

func (m Model) loadCampaigns() tea.Cmd {
	client, orgID := m.client, m.orgID()
	return func() tea.Msg {
		campaigns, err := client.ListCampaigns(context.Background(), orgID)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return CampaignsLoadedMsg{Campaigns: campaigns}
	}
}

func (m Model) reloadNotifications() tea.Cmd {
	center := m.center
	if center == nil {
		return nil
	}
	return func() tea.Msg {
		if err := center.Load(context.Background()); err != nil {
			return LoadFailedMsg{Err: err}
		}
		return NotificationsChangedMsg{}
	}
}

func (m Model) markSelectedRead() tea.Cmd {
	items := m.recent()
	if m.cursor >= len(items) {
		return nil
	}
	center, id := m.center, items[m.cursor].ID
	return func() tea.Msg {
		if err := center.MarkRead(context.Background(), id); err != nil {
			return LoadFailedMsg{Err: err}
		}
		return NotificationsChangedMsg{}
	}
}

func (m Model) markAllRead() tea.Cmd {
	center := m.center
	if center == nil {
		return nil
	}
	return func() tea.Msg {
		if err := center.MarkAllRead(context.Background()); err != nil {
			return LoadFailedMsg{Err: err}
		}
		return NotificationsChangedMsg{}
	}
}

func (m Model) deleteSelected() tea.Cmd {
	items := m.recent()
	if m.cursor >= len(items) {
		return nil
	}
	center, id := m.center, items[m.cursor].ID
	return func() tea.Msg {
		if err := center.Delete(context.Background(), id); err != nil {
			return LoadFailedMsg{Err: err}
		}
		return NotificationsChangedMsg{}
	}
}

func (m Model) sendChat(content string) tea.Cmd {
	client, orgID := m.client, m.orgID()
	return func() tea.Msg {
		reply, err := client.SendChat(context.Background(), content, orgID)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return ChatReplyMsg{Reply: reply}
	}
}

func headerTick() tea.Cmd {
	return tea.Tick(headerRefresh, func(t time.Time) tea.Msg {
		return headerTickMsg(t)
	})
}

// Custom messages for dashboard events

// SessionResolvedMsg reports the route guard's resolution.
type SessionResolvedMsg struct {
	State session.State
}

// NoOrganizationMsg aborts the dashboard when the session resolved
// without a usable organization.
type NoOrganizationMsg struct {
	Hint string
}

// CenterReadyMsg delivers the notification center once the organization
// is known and the initial load finished.
type CenterReadyMsg struct {
	Center *notify.Center
}

// DashboardLoadedMsg carries the aggregate snapshot.
type DashboardLoadedMsg struct {
	Dashboard *platform.Dashboard
}

// CampaignsLoadedMsg carries the campaign list.
type CampaignsLoadedMsg struct {
	Campaigns []platform.Campaign
}

// NotificationsChangedMsg signals that the center's state changed.
type NotificationsChangedMsg struct{}

// ChatReplyMsg carries a copilot reply.
type ChatReplyMsg struct {
	Reply *platform.ChatResponse
}

// LoadFailedMsg reports a failed platform call.
type LoadFailedMsg struct {
	Err error
}

// SessionRevokedMsg signals that the credential file disappeared while
// the dashboard was running.
type SessionRevokedMsg struct{}

// headerTickMsg drives the periodic header refresh.
type headerTickMsg time.Time

// Helper functions

func nextView(v ViewType) ViewType {
	switch v {
	case ViewOverview:
		return ViewCampaigns
	case ViewCampaigns:
		return ViewNotifications
	case ViewNotifications:
		return ViewCopilot
	default:
		return ViewOverview
	}
}

func (m Model) orgID() string {
	if org := m.manager.Organization(); org != nil {
		return org.ID
	}
	return ""
}

func (m Model) recent() []platform.Notification {
	if m.center == nil {
		return nil
	}
	return m.center.Recent()
}

func (m *Model) clampCursor() {
	n := len(m.recent())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}
