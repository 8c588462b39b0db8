package info

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
	"github.com/jalikoi/analytics-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderSessionCard(),
		m.renderUsageCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, session and API usage")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

func (m *Model) renderCard(title string, rows ...string) string {
	content := append([]string{styles.CardTitleStyle.Render(title), ""}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	) + "\n"
}

func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.renderCard("Configuration", styles.HelpStyle.Render("Configuration not loaded"))
	}
	c := m.config
	p := c.Panels
	rows := []string{
		renderRow("API", c.APIBaseURL),
		renderRow("Session File", orNone(c.SessionPath)),
		renderRow("Database", c.DatabasePath),
		renderRow("Log File", orNone(c.LogPath)),
		renderRow("Log Level", c.LogLevel),
		renderRow("Metrics", orNone(c.MetricsAddr)),
		renderRow("Timeout", c.RequestTimeout.String()),
		renderRow("Default Period", c.DefaultPeriod.Label()),
		renderRow("Churn", fmt.Sprintf("limit %d, min probability %s", p.ChurnLimit, presenter.Probability(p.ChurnMinProbability))),
		renderRow("Forecast", fmt.Sprintf("top %d", p.ForecastTopN)),
		renderRow("Anomalies", fmt.Sprintf("limit %d", p.AnomalyLimit)),
	}
	if c.ConfigFile != "" {
		rows = append(rows, renderRow("Config File", c.ConfigFile))
	}
	return m.renderCard("Configuration", rows...)
}

func (m *Model) renderSessionCard() string {
	status := styles.ErrorTextStyle.Render("○ signed out")
	if m.state.SignedIn() {
		status = styles.SuccessTextStyle.Render("● signed in")
	}
	return m.renderCard("Session",
		renderRow("User", m.state.Username()),
		renderRow("Status", status),
	)
}

func (m *Model) renderUsageCard() string {
	title := "API Calls (last 24h)"
	switch {
	case m.audit == nil:
		return m.renderCard(title, styles.HelpStyle.Render("Audit log unavailable"))
	case !m.loaded:
		return m.renderCard(title, styles.HelpStyle.Render("Loading..."))
	case m.stats.Err != nil:
		return m.renderCard(title, styles.ErrorTextStyle.Render("✗ "+m.stats.Err.Error()))
	}

	var rows []string
	if t := m.stats.Totals; t != nil {
		rows = append(rows,
			renderRow("Total Calls", humanize.Comma(int64(t.TotalCalls))),
			renderRow("Errors", humanize.Comma(int64(t.ErrorCount))),
			renderRow("Avg Latency", fmt.Sprintf("%.0f ms", t.AvgDurationMs)),
		)
	}

	if len(m.stats.Hourly) > 0 {
		counts := make([]float64, len(m.stats.Hourly))
		for i, h := range m.stats.Hourly {
			counts[i] = float64(h.TotalCalls)
		}
		rows = append(rows, renderRow("Per Hour", components.RenderSparkline(counts, len(counts))))
	}

	endpoints := presenter.Table{Headers: []string{"Endpoint", "Calls", "Errors", "Success", "Avg ms", "Last"}}
	for _, e := range m.stats.Endpoints {
		endpoints.Rows = append(endpoints.Rows, presenter.Row{
			e.Endpoint,
			strconv.Itoa(e.TotalCalls),
			strconv.Itoa(e.ErrorCount),
			fmt.Sprintf("%.0f%%", e.SuccessRate()),
			fmt.Sprintf("%.0f", e.AvgDurationMs),
			humanize.Time(e.LastCall),
		})
	}
	rows = append(rows, "", panel.Table(endpoints, -1))

	if len(m.stats.Recent) > 0 {
		rows = append(rows, "", styles.SubTitleStyle.Render("Recent"))
		for _, c := range m.stats.Recent {
			status := styles.SuccessTextStyle.Render(strconv.Itoa(c.StatusCode))
			if c.Failed() {
				status = styles.ErrorTextStyle.Render(orStatus(c.StatusCode))
			}
			rows = append(rows, fmt.Sprintf("%s  %-22s %s  %dms",
				c.Timestamp.Format(time.TimeOnly), c.Endpoint, status, c.DurationMs))
		}
	}

	return m.renderCard(title, rows...)
}

func (m *Model) renderAboutCard() string {
	return m.renderCard("About "+version.AppName,
		renderRow("Version", version.GetVersion()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}

// renderRow renders a configuration key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func orStatus(code int) string {
	if code == 0 {
		return "ERR"
	}
	return strconv.Itoa(code)
}
