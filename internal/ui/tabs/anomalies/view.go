package anomalies

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

const (
	riskColumn    = 7
	paymentColumn = 8
)

// View renders the anomalies tab.
func (m *Model) View() string {
	slot := m.panel.Slot()
	if view, ok := panel.Placeholder(slot, m.panel.Spinner(), m.width, m.height); ok {
		return view
	}

	doc, _ := slot.Data()
	if doc == nil {
		doc = &models.AnomaliesDocument{}
	}

	sections := []string{panel.Title("Anomaly Detection", periodLine(doc), panel.Status(slot, m.panel.Spinner()))}
	if m.alert != nil {
		sections = append(sections, styles.WarningTextStyle.Render("⚠ "+m.alert.Body+" (esc to dismiss)"), "")
	}
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}
	sections = append(sections, renderSummary(doc), "")

	if len(doc.Anomalies) == 0 {
		sections = append(sections,
			styles.SuccessTextStyle.Render("All clear! No anomalies detected in this period."),
			styles.HelpStyle.Render("All transactions appear normal."),
		)
	} else {
		sections = append(sections, renderScores(doc, m.viewport.Width), "", renderTable(doc))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func periodLine(doc *models.AnomaliesDocument) string {
	period := "n/a"
	if doc.Period != nil {
		period = doc.Period.StartDate + " to " + doc.Period.EndDate
	}
	return fmt.Sprintf("Period: %s · Model: %s", period, doc.Model())
}

func renderSummary(doc *models.AnomaliesDocument) string {
	card := func(title, value string, style lipgloss.Style) string {
		return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render(title),
			style.Render(value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Anomalies Detected", presenter.Count(doc.TotalAnomaliesDetected), styles.RiskHighStyle),
		card("Transactions Analyzed", presenter.Count(doc.TotalTransactionsAnalyzed), styles.CardValueStyle),
		card("Anomaly Rate", presenter.Percent(doc.AnomalyRate), styles.CardValueStyle),
		card("High Risk", fmt.Sprintf("%d", doc.HighRiskCount()), styles.RiskHighStyle),
	)
}

func renderScores(doc *models.AnomaliesDocument, width int) string {
	scores := make([]float64, len(doc.Anomalies))
	for i, a := range doc.Anomalies {
		scores[i] = a.AnomalyScore
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Render("Scores "),
		components.RenderSparkline(scores, max(width-10, 10)),
	)
}

func renderTable(doc *models.AnomaliesDocument) string {
	table := presenter.Anomalies(doc)
	for i, row := range table.Rows {
		a := doc.Anomalies[i]
		row[riskColumn] = components.LevelStyle(presenter.RiskLevel(a.RiskLevel)).Render(row[riskColumn])
		payment := styles.ErrorTextStyle
		if a.PaymentOK() {
			payment = styles.SuccessTextStyle
		}
		row[paymentColumn] = payment.Render(row[paymentColumn])
	}
	return strings.Join([]string{styles.SubTitleStyle.Render(table.Title), panel.Table(table, -1)}, "\n")
}
