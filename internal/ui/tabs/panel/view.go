package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/services/api"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// Placeholder renders the states in which slot has nothing to show: no
// request yet, first load in flight, or a failure with no earlier data. It
// returns false once the caller should render data.
func Placeholder[T any](slot *fetch.Slot[T], sp components.LoadingSpinner, width, height int) (string, bool) {
	_, hasData := slot.Data()
	switch {
	case !slot.Issued():
		return styles.CenterBoth(styles.HelpStyle.Render("Apply a period to load data (f)"), width, height), true
	case slot.Blocking():
		return components.RenderSpinnerCentered(sp, width, height), true
	case !hasData && slot.Status() == fetch.Failed:
		if !slot.ErrorVisible() {
			return styles.CenterBoth(styles.HelpStyle.Render("No data. Press r to retry."), width, height), true
		}
		return ErrorBox(slot.Err(), width), true
	}
	return "", false
}

// Banner renders the dismissible error above data kept from an earlier
// load, or "" when no error is visible.
func Banner[T any](slot *fetch.Slot[T], width int) string {
	if !slot.ErrorVisible() {
		return ""
	}
	return ErrorBox(slot.Err(), width)
}

// Status renders the refreshing badge while a reload runs behind data.
func Status[T any](slot *fetch.Slot[T], sp components.LoadingSpinner) string {
	if slot.Refreshing() {
		return sp.Badge()
	}
	return ""
}

// Message returns the server-supplied detail of err, falling back to the
// error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if detail, ok := api.DetailOf(err); ok {
		return detail
	}
	return err.Error()
}

// ErrorBox renders a request failure. Model-not-trained failures show the
// training steps instead of the retry hint.
func ErrorBox(err error, width int) string {
	lines := []string{styles.ErrorTextStyle.Render("✗ " + Message(err)), ""}

	if api.IsModelNotTrained(err) {
		lines = append(lines, styles.WarningTextStyle.Render("ML models are not trained yet."))
		for i, step := range presenter.Remediation {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
		}
	} else {
		lines = append(lines, styles.HelpStyle.Render("r retry · esc dismiss"))
	}

	box := styles.ErrorPanelStyle
	if width > 8 {
		box = box.MaxWidth(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// Title renders a tab heading with an optional subtitle and status badge.
func Title(title, subtitle, status string) string {
	head := styles.TitleStyle.Render(title)
	if status != "" {
		head = lipgloss.JoinHorizontal(lipgloss.Top, head, "  ", status)
	}
	if subtitle == "" {
		return head
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, styles.HelpStyle.Render(subtitle), "")
}

// Table renders a presenter table with aligned columns. selected highlights
// one row; pass -1 for none.
func Table(t presenter.Table, selected int) string {
	if len(t.Rows) == 0 {
		return styles.HelpStyle.Render("No rows")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	render := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{styles.TableHeaderStyle.Render(render(t.Headers))}
	for i, row := range t.Rows {
		line := render(row)
		if i == selected {
			line = styles.TableSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
