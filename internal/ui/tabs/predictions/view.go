package predictions

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

const probabilityBarWidth = 12

// View renders the predictions tab.
func (m *Model) View() string {
	slot := m.panel.Slot()
	if view, ok := panel.Placeholder(slot, m.panel.Spinner(), m.width, m.height); ok {
		return view
	}

	p, _ := slot.Data()
	if p == nil {
		p = &models.Predictions{}
	}

	sections := []string{
		panel.Title("ML Predictions",
			"Models Active: "+presenter.ModelsActive(p.ModelInfo),
			panel.Status(slot, m.panel.Spinner())),
	}
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}
	sections = append(sections, renderChurn(p.Churn), "", renderForecast(p.Revenue))

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func renderChurn(c models.ChurnPredictions) string {
	lines := []string{
		styles.SubTitleStyle.Render("Churn Risk"),
		styles.BannerStyle.Render(fmt.Sprintf("Model: %s · Accuracy: %s · High risk: %s",
			orUnknown(c.ModelType), presenter.Accuracy(c.ModelAccuracy), presenter.Count(c.HighRiskCount))),
		"",
	}

	if len(c.CustomersAtRisk) == 0 {
		return strings.Join(append(lines, styles.HelpStyle.Render("No customers at risk.")), "\n")
	}

	table := presenter.Table{Headers: []string{"Customer", "Churn Probability", "Risk", "Total Spent", "Txns", "Recency"}}
	for _, cust := range c.CustomersAtRisk {
		level := components.LevelStyle(presenter.ProbabilityLevel(cust.ChurnProbability))
		table.Rows = append(table.Rows, presenter.Row{
			cust.CustomerID.String(),
			components.ProbabilityCell(cust.ChurnProbability, probabilityBarWidth),
			level.Render(orUnknown(cust.RiskLevel)),
			presenter.Number(cust.TotalSpent),
			presenter.Count(cust.Transactions),
			fmt.Sprintf("%dd", cust.RecencyDays),
		})
	}
	return strings.Join(append(lines, panel.Table(table, -1)), "\n")
}

func renderForecast(f models.RevenueForecast) string {
	lines := []string{
		styles.SubTitleStyle.Render("Revenue Forecast"),
		styles.BannerStyle.Render(fmt.Sprintf("Model: %s · %d-month total: %s",
			orUnknown(f.ModelType), f.ForecastPeriodMonths, presenter.Number(f.TotalForecastedRevenue))),
		"",
	}

	if len(f.TopCustomersForecast) == 0 {
		return strings.Join(append(lines, styles.HelpStyle.Render("No forecast available.")), "\n")
	}

	table := presenter.Table{Headers: []string{"Customer", "Predicted", "Historical", "Txns", "Confidence"}}
	for _, cf := range f.TopCustomersForecast {
		badge := components.LevelStyle(presenter.ConfidenceLevel(cf.Confidence)).Render(orUnknown(cf.Confidence))
		table.Rows = append(table.Rows, presenter.Row{
			cf.CustomerID.String(),
			presenter.Number(cf.PredictedRevenue),
			presenter.Number(cf.HistoricalRevenue),
			presenter.Count(cf.Transactions),
			badge,
		})
	}
	return strings.Join(append(lines, panel.Table(table, -1)), "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
