// Package customers provides the top customers and stations tab.
package customers

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

type keyMap struct {
	panel.Keys
	Switch key.Binding
}

// Model renders the ranked tables of the insights document.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
	stations bool
}

// New creates a new customers model.
func New(state *app.State) *Model {
	return &Model{
		state:   state,
		spinner: components.NewSpinner("Loading customers..."),
		keys: keyMap{
			Keys: panel.DefaultKeys(),
			Switch: key.NewBinding(
				key.WithKeys("s"),
				key.WithHelp("s", "customers/stations"),
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
		return m, app.Retry(app.ResourceInsights)
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.state.Insights().Dismiss()
	case key.Matches(keyMsg, m.keys.Switch):
		m.stations = !m.stations
		m.viewport.GotoTop()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// View renders the customers tab.
func (m *Model) View() string {
	slot := m.state.Insights()
	if view, ok := panel.Placeholder(slot, m.spinner, m.width, m.height); ok {
		return view
	}

	var doc *models.InsightsDocument
	if resp, _ := slot.Data(); resp != nil {
		doc = resp.Data
	}
	customers, stations := presenter.Customers(doc)
	table := customers
	if m.stations {
		table = stations
	}

	sections := []string{
		panel.Title(table.Title, "s switches between customers and stations", panel.Status(slot, m.spinner)),
	}
	if banner := panel.Banner(slot, m.width); banner != "" {
		sections = append(sections, banner, "")
	}
	sections = append(sections, panel.Table(table, -1))

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
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
	return []key.Binding{m.keys.Switch, m.keys.Retry, m.keys.Dismiss}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Switch}, {m.keys.Retry, m.keys.Dismiss}}
}
