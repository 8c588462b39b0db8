package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// View renders the overview tab.
func (m *Model) View() string {
	slot := m.state.Insights()
	if view, ok := panel.Placeholder(slot, m.spinner, m.width, m.height); ok {
		return view
	}

	resp, _ := slot.Data()
	var sections []string
	sections = append(sections, panel.Title("Business Overview", "", panel.Status(slot, m.spinner)))
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}

	if resp == nil || resp.Data == nil {
		sections = append(sections, styles.HelpStyle.Render("No insights for this period."))
	} else {
		sections = append(sections, m.renderDocument(presenter.Present(resp.Data, resp.Comparison)))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.NewStyle().Padding(1, 2).Render(m.viewport.View())
}

func (m *Model) renderDocument(ov presenter.Overview) string {
	var sections []string

	if ov.PeriodBanner != "" {
		sections = append(sections, styles.BannerStyle.Render(ov.PeriodBanner), "")
	}

	sections = append(sections, m.renderCards(ov.Cards), "")

	if ov.Comparison != nil {
		sections = append(sections, renderComparison(ov.Comparison), "")
	}

	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderSegments(ov.Segments),
			"   ",
			renderChurn(ov),
			"   ",
			renderCLV(ov),
		),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderCards(cards []presenter.Card) string {
	perRow := max(1, min(len(cards), (m.width-4)/30))
	cardWidth := max(24, (m.width-4)/perRow-3)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		var row []string
		for _, c := range cards[start:min(start+perRow, len(cards))] {
			row = append(row, renderCard(c, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c presenter.Card, width int) string {
	lines := []string{
		styles.CardTitleStyle.Render(c.Title),
		styles.CardValueStyle.Render(c.Value),
	}
	if c.Subtitle != "" {
		lines = append(lines, styles.HelpStyle.Render(c.Subtitle))
	}
	if text := c.ChangeText(); text != "" {
		lines = append(lines, components.RenderTrend(c.Trend, text))
	}
	return styles.CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func renderComparison(cmp *presenter.ComparisonView) string {
	lines := []string{styles.SubTitleStyle.Render("Period Comparison")}
	if cmp.PreviousPeriod != "" {
		lines = append(lines, styles.HelpStyle.Render(cmp.PreviousPeriod))
	}
	for _, r := range cmp.Rows {
		lines = append(lines, fmt.Sprintf("  %-16s %s", r.Label, components.RenderTrend(r.Trend, r.Text)))
	}
	return strings.Join(lines, "\n")
}

func renderSegments(rows []presenter.SegmentRow) string {
	lines := []string{styles.SubTitleStyle.Render("Customer Segments")}
	if len(rows) == 0 {
		return strings.Join(append(lines, styles.HelpStyle.Render("No segments")), "\n")
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %-20s %8s  %s",
			r.Name, presenter.Count(r.Count), styles.HelpStyle.Render(r.Revenue)))
	}
	return strings.Join(lines, "\n")
}

func renderChurn(ov presenter.Overview) string {
	lines := []string{styles.SubTitleStyle.Render("Churn Risk")}
	for _, r := range ov.Churn {
		style := components.LevelStyle(presenter.RiskLevel(r.Bucket))
		lines = append(lines, fmt.Sprintf("  %s %8s", style.Render(fmt.Sprintf("%-12s", r.Bucket)), presenter.Count(r.Count)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("  Churn rate       %s", ov.ChurnRate),
		fmt.Sprintf("  Revenue at risk  %s", styles.ErrorTextStyle.Render(ov.RevenueAtRisk)),
	)
	return strings.Join(lines, "\n")
}

func renderCLV(ov presenter.Overview) string {
	return strings.Join([]string{
		styles.SubTitleStyle.Render("Customer Lifetime Value"),
		fmt.Sprintf("  6-month projection  %s", styles.SuccessTextStyle.Render(ov.CLVTotal)),
		fmt.Sprintf("  Average per customer %s", ov.CLVAverage),
	}, "\n")
}
