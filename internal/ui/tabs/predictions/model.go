// Package predictions provides the churn and revenue forecast tab.
package predictions

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// Model shows churn predictions and the revenue forecast for the applied
// window. It owns its fetch state.
type Model struct {
	panel    *panel.Panel[*models.Predictions]
	keys     panel.Keys
	viewport viewport.Model
	width    int
	height   int
}

// New creates a predictions tab backed by b.
func New(b app.Backend) *Model {
	m := &Model{
		keys:     panel.DefaultKeys(),
		viewport: viewport.New(0, 0),
	}
	var load panel.Loader[*models.Predictions]
	if b != nil {
		load = b.LoadPredictions
	}
	m.panel = panel.New("predictions", "Loading predictions...", load)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.panel.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.panel.Update(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Retry):
		return m, m.panel.Retry()
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.panel.Slot().Dismiss()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(keyMsg)
	return m, cmd
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
