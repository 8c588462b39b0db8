package segments

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/services/drilldown"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// maxRosterRows caps the overlay height; the roster itself is not truncated.
const maxRosterRows = 15

// View renders the segments tab.
func (m *Model) View() string {
	slot := m.panel.Slot()
	if view, ok := panel.Placeholder(slot, m.panel.Spinner(), m.width, m.height); ok {
		return view
	}

	doc, _ := slot.Data()
	table := presenter.Segments(doc)

	subtitle := ""
	if doc != nil {
		subtitle = fmt.Sprintf("Model: %s · %d clusters · %s customers analyzed",
			orUnknown(doc.ModelType), doc.NClusters, presenter.Count(doc.TotalCustomersAnalyzed))
	}

	sections := []string{panel.Title("Customer Segments", subtitle, panel.Status(slot, m.panel.Spinner()))}
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}
	if len(table.Rows) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No segments for this period."))
	} else {
		sections = append(sections,
			panel.Table(table, m.selected),
			"",
			styles.HelpStyle.Render("j/k select · enter view customers"),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	base := styles.DocStyle.Render(m.viewport.View())

	if !m.roster.IsOpen() {
		return base
	}
	return components.PlaceOverlay(base, m.renderDrillDown(), m.width, m.height)
}

func (m *Model) renderDrillDown() string {
	lines := []string{styles.TitleStyle.Render("Customers · " + m.roster.Selected()), ""}

	switch m.roster.State() {
	case drilldown.Opening:
		lines = append(lines, m.spinner.View())

	case drilldown.Failed:
		lines = append(lines,
			styles.ErrorTextStyle.Render("✗ "+panel.Message(m.roster.Err())),
			"",
			styles.HelpStyle.Render("r retry"),
		)

	case drilldown.Loaded:
		r := m.roster.Roster()
		table := presenter.Roster(r)
		total := len(table.Rows)
		if total > maxRosterRows {
			table.Rows = table.Rows[:maxRosterRows]
		}
		lines = append(lines, panel.Table(table, -1))
		if total > maxRosterRows {
			lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf("… and %d more", total-maxRosterRows)))
		}
		lines = append(lines, "", styles.HelpStyle.Render(fmt.Sprintf("%d customers", total)))
		if r != nil {
			if n := r.LegacyPhoneCount(); n > 0 {
				lines = append(lines, styles.WarningTextStyle.Render(
					fmt.Sprintf("⚠ %d phone numbers came from the deprecated motari_phone field", n)))
			}
		}
	}

	lines = append(lines, "", styles.HelpStyle.Render("j/k switch segment · esc close"))

	box := styles.ModalContentStyle
	if m.width > 10 {
		box = box.MaxWidth(m.width - 4)
	}
	return box.Render(strings.Join(lines, "\n"))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
