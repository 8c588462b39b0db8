// Package anomalies provides the transaction anomaly detection tab.
package anomalies

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// Model shows the flagged transactions for the applied window.
type Model struct {
	panel    *panel.Panel[*models.AnomaliesDocument]
	alert    *services.AlertEvent
	keys     panel.Keys
	viewport viewport.Model
	width    int
	height   int
}

// New creates an anomalies tab backed by b.
func New(b app.Backend) *Model {
	m := &Model{
		keys:     panel.DefaultKeys(),
		viewport: viewport.New(0, 0),
	}
	var load panel.Loader[*models.AnomaliesDocument]
	if b != nil {
		load = b.LoadAnomalies
	}
	m.panel = panel.New("anomalies", "Scanning transactions...", load)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.panel.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Retry):
			return m, m.panel.Retry()
		case key.Matches(msg, m.keys.Dismiss):
			if m.alert != nil {
				m.alert = nil
				return m, nil
			}
			m.panel.Slot().Dismiss()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case app.AlertMsg:
		alert := msg.Event
		m.alert = &alert
		return m, nil

	default:
		return m, m.panel.Update(msg)
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Retry, m.keys.Dismiss}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Retry, m.keys.Dismiss}}
}
