// Package info provides the configuration and API usage tab.
package info

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/config"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
)

const (
	statsWindow = 24 * time.Hour
	recentLimit = 8
)

// AuditSource reads the API call audit. *services.Manager implements it.
type AuditSource interface {
	GetEndpointStats(since time.Time) ([]models.EndpointStats, error)
	GetHourlyStats(hours int) ([]models.HourlyStats, error)
	GetTotalStats() (*models.TotalStats, error)
	GetRecentCalls(limit int) ([]models.APICall, error)
}

// StatsLoadedMsg carries a snapshot of the audit tables.
type StatsLoadedMsg struct {
	Totals    *models.TotalStats
	Err       error
	Endpoints []models.EndpointStats
	Hourly    []models.HourlyStats
	Recent    []models.APICall
}

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh stats"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	audit    AuditSource
	stats    StatsLoadedMsg
	loaded   bool
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new info model. audit may be nil when no database is open.
func New(state *app.State, cfg *config.Config, audit AuditSource) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		audit:    audit,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init loads the first stats snapshot.
func (m *Model) Init() tea.Cmd {
	return m.loadStats()
}

func (m *Model) loadStats() tea.Cmd {
	if m.audit == nil {
		return nil
	}
	audit := m.audit
	return func() tea.Msg {
		var msg StatsLoadedMsg
		var err error
		if msg.Totals, err = audit.GetTotalStats(); err != nil {
			return StatsLoadedMsg{Err: err}
		}
		if msg.Endpoints, err = audit.GetEndpointStats(time.Now().Add(-statsWindow)); err != nil {
			return StatsLoadedMsg{Err: err}
		}
		if msg.Hourly, err = audit.GetHourlyStats(int(statsWindow.Hours())); err != nil {
			return StatsLoadedMsg{Err: err}
		}
		if msg.Recent, err = audit.GetRecentCalls(recentLimit); err != nil {
			return StatsLoadedMsg{Err: err}
		}
		return msg
	}
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		if msg.Err != nil {
			logger.Warn("failed to load API call stats", "error", msg.Err)
		}
		m.stats = msg
		m.loaded = true
		return m, nil

	case app.InsightsLoadedMsg:
		return m, m.loadStats()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadStats()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
