// Package charts provides the visualization series tab.
package charts

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

type keyMap struct {
	panel.Keys
	Style key.Binding
}

// Model renders the visualization document held by the root model.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
	lines    bool
}

// New creates a new charts model.
func New(state *app.State) *Model {
	return &Model{
		state:   state,
		spinner: components.NewSpinner("Loading charts..."),
		keys: keyMap{
			Keys: panel.DefaultKeys(),
			Style: key.NewBinding(
				key.WithKeys("v"),
				key.WithHelp("v", "bars/lines"),
			),
		},
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Retry):
		return m, app.Retry(app.ResourceVisualizations)
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.state.Visuals().Dismiss()
	case key.Matches(keyMsg, m.keys.Style):
		m.lines = !m.lines
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
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
	return []key.Binding{m.keys.Style, m.keys.Retry, m.keys.Dismiss}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Style}, {m.keys.Retry, m.keys.Dismiss}}
}
