package charts

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// View renders the charts tab.
func (m *Model) View() string {
	slot := m.state.Visuals()
	if view, ok := panel.Placeholder(slot, m.spinner, m.width, m.height); ok {
		return view
	}

	doc, _ := slot.Data()
	charts := presenter.Charts(doc)

	sections := []string{panel.Title("Charts", "", panel.Status(slot, m.spinner))}
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}
	if len(charts) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No charts for this period."))
	}

	chartWidth := max(m.viewport.Width-4, 20)
	for _, c := range charts {
		sections = append(sections, styles.SubTitleStyle.Render(c.Title), m.renderChart(c, chartWidth), "")
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderChart(c presenter.Chart, width int) string {
	labels := make([]string, len(c.Points))
	values := make([]float64, len(c.Points))
	for i, p := range c.Points {
		labels[i] = p.Label
		values[i] = p.Value
	}

	if m.lines && len(values) > 1 {
		return components.RenderLineChart(values, width-12, 8, c.Title)
	}
	return components.RenderBarChart(labels, values, width, presenter.Number)
}
