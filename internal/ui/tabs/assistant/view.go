package assistant

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// View renders the assistant tab.
func (m *Model) View() string {
	status := styles.HelpStyle.Render("enter send · esc clear · tab next tab")
	if m.session.Pending() {
		status = m.spinner.View() + styles.HelpStyle.Render(" thinking...")
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Analytics Assistant"),
		m.viewport.View(),
		status,
		m.input.View(),
	))
}

// refresh re-renders the transcript and keeps the newest message in view.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-2, 20))

	var blocks []string
	for _, msg := range m.session.Messages() {
		who, style := "Assistant", styles.ChatAssistantStyle
		if msg.Role == models.RoleUser {
			who, style = "You", styles.ChatUserStyle
		}
		header := style.Render(who) + styles.HelpStyle.Render(" · "+humanize.Time(msg.Timestamp))
		blocks = append(blocks, header+"\n"+wrap.Render(msg.Content))
	}
	return strings.Join(blocks, "\n\n")
}
