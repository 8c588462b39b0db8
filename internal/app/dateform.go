package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// dateForm is the two-field custom range editor opened with the custom key.
type dateForm struct {
	inputs [2]textinput.Model
	focus  int
}

func newDateForm(w models.TimeWindow) *dateForm {
	f := &dateForm{}
	for i, label := range []string{"Start", "End"} {
		ti := textinput.New()
		ti.Placeholder = "yyyy-MM-dd"
		ti.CharLimit = len(models.DateLayout)
		ti.Width = len(models.DateLayout) + 1
		ti.Prompt = fmt.Sprintf("%-6s", label)
		f.inputs[i] = ti
	}
	if w.Start != nil {
		f.inputs[0].SetValue(w.Start.Format(models.DateLayout))
	}
	if w.End != nil {
		f.inputs[1].SetValue(w.End.Format(models.DateLayout))
	}
	f.inputs[0].Focus()
	return f
}

func (f *dateForm) toggleFocus() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *dateForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values parses both fields. Range ordering is checked on apply.
func (f *dateForm) values() (start, end time.Time, err error) {
	start, err = models.ParseDate(f.inputs[0].Value())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err = models.ParseDate(f.inputs[1].Value())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func (f *dateForm) view() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render("Custom Range")
	lines := []string{title, ""}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "", styles.HelpStyle.Render("tab switch field · enter set · esc cancel"))
	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}
