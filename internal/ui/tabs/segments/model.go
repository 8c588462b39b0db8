// Package segments provides the ML customer segments tab and its roster
// drill-down.
package segments

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/drilldown"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/panel"
)

// RosterLoadedMsg carries the roster of the segment it was requested for.
type RosterLoadedMsg struct {
	Roster  *models.SegmentRoster
	Err     error
	Segment string
	Token   drilldown.Token
}

type keyMap struct {
	panel.Keys
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding
	Close key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Keys: panel.DefaultKeys(),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous segment"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next segment"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view customers"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close customers"),
		),
	}
}

// Model lists the customer segments and opens one segment's roster in an
// overlay.
type Model struct {
	backend  app.Backend
	panel    *panel.Panel[*models.SegmentsDocument]
	roster   drilldown.Cache
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	selected int
	width    int
	height   int
}

// New creates a segments tab backed by b.
func New(b app.Backend) *Model {
	m := &Model{
		backend:  b,
		spinner:  components.NewSpinner("Loading customers..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
	var load panel.Loader[*models.SegmentsDocument]
	if b != nil {
		load = b.LoadSegments
	}
	m.panel = panel.New("segments", "Loading segments...", load)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.panel.Init(), m.spinner.Tick())
}

// CapturesKey claims enter, which would otherwise apply the filters, and
// every key while the drill-down is open.
func (m *Model) CapturesKey(msg tea.KeyMsg) bool {
	if m.roster.IsOpen() {
		return msg.String() != "ctrl+c"
	}
	return key.Matches(msg, m.keys.Open)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case RosterLoadedMsg:
		m.applyRoster(msg)
		return m, nil

	case app.WindowAppliedMsg:
		// A roster belongs to the window it was opened for.
		m.roster.Close()
		m.selected = 0
		return m, m.panel.Update(msg)

	default:
		cmd := m.panel.Update(msg)
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		return m, tea.Batch(cmd, spinCmd)
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.roster.IsOpen() {
		return m.handleDrillDownKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Retry):
		return m.panel.Retry()
	case key.Matches(msg, m.keys.Dismiss):
		m.panel.Slot().Dismiss()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// handleDrillDownKey moves between segments while the overlay is open; each
// move replaces the open roster.
func (m *Model) handleDrillDownKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.roster.Close()
	case key.Matches(msg, m.keys.Up):
		if m.move(-1) {
			return m.open()
		}
	case key.Matches(msg, m.keys.Down):
		if m.move(1) {
			return m.open()
		}
	case key.Matches(msg, m.keys.Retry):
		if m.roster.State() == drilldown.Failed {
			return m.open()
		}
	}
	return nil
}

func (m *Model) segments() []models.Segment {
	doc, ok := m.panel.Slot().Data()
	if !ok || doc == nil {
		return nil
	}
	return doc.Segments
}

// move shifts the highlighted segment and reports whether it changed.
func (m *Model) move(delta int) bool {
	n := len(m.segments())
	if n == 0 {
		return false
	}
	next := min(max(m.selected+delta, 0), n-1)
	if next == m.selected {
		return false
	}
	m.selected = next
	return true
}

// open requests the roster of the highlighted segment for the window the
// listed segments were loaded with, even while a newer window is loading.
func (m *Model) open() tea.Cmd {
	segs := m.segments()
	if len(segs) == 0 || m.backend == nil {
		return nil
	}
	m.selected = min(m.selected, len(segs)-1)
	name := segs[m.selected].SegmentName
	q := m.panel.Slot().DataQuery()
	tok := m.roster.Open(name, q)

	b := m.backend
	return func() tea.Msg {
		roster, err := b.LoadSegmentRoster(context.Background(), name, q)
		return RosterLoadedMsg{Segment: name, Token: tok, Roster: roster, Err: err}
	}
}

func (m *Model) applyRoster(msg RosterLoadedMsg) {
	if msg.Err != nil {
		if m.roster.Fail(msg.Segment, msg.Token, msg.Err) {
			logger.Warn("segment roster failed", "segment", msg.Segment, "error", msg.Err)
		}
		return
	}
	if !m.roster.Apply(msg.Segment, msg.Token, msg.Roster) {
		logger.Debug("dropped stale roster", "segment", msg.Segment, "selected", m.roster.Selected())
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
	if m.roster.IsOpen() {
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Close}
	}
	return []key.Binding{m.keys.Down, m.keys.Open, m.keys.Retry}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Close},
		{m.keys.Retry, m.keys.Dismiss},
	}
}
