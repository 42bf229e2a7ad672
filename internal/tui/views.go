package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
)

// renderRestoring renders the placeholder shown while the route guard
// is still resolving the stored session.
func (m Model) renderRestoring() string {
	var b strings.Builder

	title := m.styles.Title.Render("🧠 NeuroCron")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(m.styles.Muted.Render(" Restoring session..."))
	b.WriteString("\n")

	return b.String()
}

// renderHeader renders the view title plus the identity line with the
// notification bell and the stream connectivity indicator.
func (m Model) renderHeader(title string) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	var parts []string
	if user := m.manager.User(); user != nil {
		who := user.FullName
		if who == "" {
			who = user.Email
		}
		if org := m.manager.Organization(); org != nil {
			who += " @ " + org.Name
		}
		parts = append(parts, m.styles.Subtitle.Render(who))
	}

	unread := 0
	connected := false
	if m.center != nil {
		unread = m.center.Unread()
		connected = m.center.Connected()
	}

	bell := fmt.Sprintf("● %d unread", unread)
	if unread > 0 {
		parts = append(parts, m.styles.Warning.Render(bell))
	} else {
		parts = append(parts, m.styles.Muted.Render(bell))
	}

	if connected {
		parts = append(parts, m.styles.Success.Render("live"))
	} else {
		parts = append(parts, m.styles.Muted.Render("offline"))
	}

	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n\n")

	return b.String()
}

// renderOverview renders aggregate stats and the recent campaigns
func (m Model) renderOverview() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("📊 Overview"))

	if m.dashboard == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" Loading dashboard..."))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	b.WriteString(m.renderStatsBox())
	b.WriteString("\n\n")

	if len(m.dashboard.RecentCampaigns) > 0 {
		b.WriteString(m.styles.Status.Render("Recent Campaigns"))
		b.WriteString("\n")
		for i := range m.dashboard.RecentCampaigns {
			b.WriteString(m.renderCampaignLine(&m.dashboard.RecentCampaigns[i], false))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderErrorBox())
	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderStatsBox renders the aggregate statistics box
func (m Model) renderStatsBox() string {
	stats := m.dashboard.Stats

	rows := []string{
		fmt.Sprintf("Active campaigns:   %s", m.styles.Status.Render(fmt.Sprintf("%d", stats.ActiveCampaigns))),
		fmt.Sprintf("Total spend:        %s", m.styles.Warning.Render(fmt.Sprintf("$%.2f", stats.TotalSpend))),
		fmt.Sprintf("Conversions:        %s", m.styles.Success.Render(fmt.Sprintf("%d", stats.TotalConversions))),
		fmt.Sprintf("Attributed revenue: %s", m.styles.Success.Render(fmt.Sprintf("$%.2f", stats.AttributedRevenue))),
		fmt.Sprintf("Audience size:      %s", m.styles.Muted.Render(fmt.Sprintf("%d", stats.AudienceSize))),
		fmt.Sprintf("Unread insights:    %s", m.styles.Muted.Render(fmt.Sprintf("%d", stats.UnreadInsights))),
	}

	return m.styles.Border.Render(strings.Join(rows, "\n"))
}

// renderCampaigns renders the campaign list view
func (m Model) renderCampaigns() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("📣 Campaigns"))

	if !m.campaignsLoaded {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" Loading campaigns..."))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	if len(m.campaigns) == 0 {
		b.WriteString(m.styles.Muted.Render("No campaigns yet"))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	for i := range m.campaigns {
		b.WriteString(m.renderCampaignLine(&m.campaigns[i], true))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderErrorBox())
	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderCampaignLine renders a single campaign entry
func (m Model) renderCampaignLine(c *platform.Campaign, detailed bool) string {
	var icon string
	var style lipgloss.Style
	switch c.Status {
	case "active":
		icon = "▶"
		style = m.styles.Success
	case "paused":
		icon = "⏸"
		style = m.styles.Warning
	case "completed":
		icon = "✓"
		style = m.styles.Muted
	case "draft":
		icon = "○"
		style = m.styles.Muted
	default:
		icon = "•"
		style = m.styles.Muted
	}

	var b strings.Builder
	b.WriteString(style.Render(icon))
	b.WriteString(" ")
	b.WriteString(m.styles.Status.Render(c.Name))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s / %s", c.Channel, c.Objective)))

	if detailed {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  $%.2f of $%.2f", c.Spend, c.Budget)))
	}

	return b.String()
}

// renderNotifications renders the notification center view
func (m Model) renderNotifications() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("🔔 Notifications"))

	items := m.recent()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("No notifications"))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	for i := range items {
		b.WriteString(m.renderNotificationLine(i, &items[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	actions := []string{
		m.styles.Key.Render("enter") + " " + m.styles.KeyDesc.Render("mark read"),
		m.styles.Key.Render("a") + " " + m.styles.KeyDesc.Render("mark all read"),
		m.styles.Key.Render("d") + " " + m.styles.KeyDesc.Render("delete"),
	}
	b.WriteString(m.styles.Help.Render(strings.Join(actions, " • ")))
	b.WriteString("\n")

	b.WriteString(m.renderErrorBox())
	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderNotificationLine renders a single notification in the list
func (m Model) renderNotificationLine(index int, n *platform.Notification) string {
	var b strings.Builder

	icon := "●"
	if n.Read {
		icon = "○"
	}

	style := m.styles.Status
	switch n.Type {
	case platform.NotificationWarning:
		style = m.styles.Warning
	case platform.NotificationError:
		style = m.styles.Error
	}
	if n.Read {
		style = m.styles.Muted
	}

	if index == m.cursor {
		b.WriteString(m.styles.Highlighted.Render(fmt.Sprintf(" %s ", icon)))
	} else {
		b.WriteString(" " + style.Render(icon) + " ")
	}

	if index == m.cursor {
		b.WriteString(m.styles.Status.Bold(true).Render(n.Title))
	} else {
		b.WriteString(style.Render(n.Title))
	}

	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s · %s", n.Type, formatRelative(n.CreatedAt))))

	return b.String()
}

// renderCopilot renders the copilot chat view
func (m Model) renderCopilot() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("✨ Copilot"))

	if len(m.chat) == 0 && !m.thinking {
		b.WriteString(m.styles.Muted.Render("Ask about campaigns, audiences, or performance."))
		b.WriteString("\n\n")
	}

	entries := m.chat
	if len(entries) > chatHistoryWindow {
		entries = entries[len(entries)-chatHistoryWindow:]
	}

	for _, entry := range entries {
		if entry.role == roleYou {
			b.WriteString(m.styles.Key.Render("You: "))
			b.WriteString(entry.content)
			b.WriteString("\n")
		} else {
			b.WriteString(m.styles.Status.Render("Copilot:"))
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(entry.content))
		}
		b.WriteString("\n")
	}

	if m.thinking {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" Thinking..."))
		b.WriteString("\n\n")
	}

	if len(m.suggestions) > 0 {
		b.WriteString(m.styles.Muted.Render("Suggestions (↑/↓ to fill):"))
		b.WriteString("\n")
		for i, s := range m.suggestions {
			if i == m.suggestion {
				b.WriteString(m.styles.Highlighted.Render(" " + s + " "))
			} else {
				b.WriteString(m.styles.KeyDesc.Render("  " + s))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.chatInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderErrorBox())
	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderMarkdown renders a copilot reply through glamour, falling back
// to the raw text when rendering fails.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content + "\n"
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

// renderHelp renders the help view
func (m Model) renderHelp() string {
	var b strings.Builder

	title := m.styles.Title.Render("❓ Help")
	b.WriteString(title)
	b.WriteString("\n\n")

	hotkeys := []struct {
		key  string
		desc string
	}{
		{"tab", "Next view"},
		{"1-4", "Jump to overview / campaigns / notifications / copilot"},
		{"↑/↓", "Move selection, or cycle copilot suggestions"},
		{"enter", "Mark selected notification read"},
		{"a", "Mark all notifications read"},
		{"d", "Delete selected notification"},
		{"r", "Refresh data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
		{"Ctrl+C", "Force quit"},
		{"Esc", "Back to overview"},
	}

	for _, hk := range hotkeys {
		keyText := m.styles.Key.Render(fmt.Sprintf("%-10s", hk.key))
		descText := m.styles.KeyDesc.Render(hk.desc)
		b.WriteString(keyText + " " + descText)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press ? or Esc to return"))

	return b.String()
}

// renderGoodbye renders the final screen for abnormal exits. A regular
// quit prints nothing.
func (m Model) renderGoodbye() string {
	var b strings.Builder

	switch {
	case m.sessionState == session.StateUnauthenticated:
		b.WriteString(m.styles.Warning.Render("🔒 Not signed in"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("Run ") +
			m.styles.Key.Render("neurocron auth login") +
			m.styles.Muted.Render(" to sign in."))
		b.WriteString("\n")

	case m.orgHint != "":
		b.WriteString(m.styles.Warning.Render("🏢 No organization"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render(m.orgHint))
		b.WriteString("\n")

	case m.revoked:
		b.WriteString(m.styles.Error.Render("Session ended: "))
		b.WriteString(m.styles.Muted.Render("signed out in another terminal."))
		b.WriteString("\n")
	}

	return b.String()
}

// renderErrorBox renders the last platform error, if any
func (m Model) renderErrorBox() string {
	if m.lastError == "" {
		return ""
	}
	box := m.styles.Border.
		BorderForeground(lipgloss.Color("196")). // Red border
		Render(m.styles.Error.Render("❌ Error: ") + m.lastError)
	return box + "\n\n"
}

// renderHelpLine renders the help line at the bottom
func (m Model) renderHelpLine() string {
	helpItems := []string{
		m.styles.Key.Render("tab") + " views",
		m.styles.Key.Render("1-4") + " jump",
		m.styles.Key.Render("r") + " refresh",
		m.styles.Key.Render("?") + " help",
		m.styles.Key.Render("q") + " quit",
	}

	helpLine := strings.Join(helpItems, " • ")
	return m.styles.Help.Render(helpLine)
}

// formatRelative formats a timestamp as a short age
func formatRelative(t time.Time) string {
	if t.IsZero() {
		return "now"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
