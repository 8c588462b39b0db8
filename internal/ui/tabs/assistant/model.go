// Package assistant provides the conversational analytics query tab.
package assistant

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/services/chat"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// ReplyMsg carries the assistant's answer to one message.
type ReplyMsg struct {
	Reply string
	Err   error
}

type keyMap struct {
	Send   key.Binding
	Clear  key.Binding
	Scroll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear input"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
	}
}

// passthrough lists the keys the assistant leaves to the root model while
// the input has focus.
var passthrough = key.NewBinding(key.WithKeys("tab", "shift+tab", "ctrl+c"))

// Model is the chat transcript and its input line.
type Model struct {
	backend  app.Backend
	session  *chat.Session
	input    textinput.Model
	spinner  spinner.Model
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates an assistant tab backed by b.
func New(b app.Backend) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about revenue, customers, stations or trends..."
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.InfoTextStyle

	return &Model{
		backend:  b,
		session:  chat.NewSession(),
		input:    ti,
		spinner:  sp,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// CapturesKey claims typing keys so that letters reach the input instead of
// the global shortcuts.
func (m *Model) CapturesKey(msg tea.KeyMsg) bool {
	return !key.Matches(msg, passthrough)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case ReplyMsg:
		if msg.Err != nil {
			logger.Warn("assistant request failed", "error", msg.Err)
			m.session.Fail(msg.Err)
		} else {
			m.session.Reply(msg.Reply)
		}
		m.refresh()
		return m, nil

	default:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		return m.send()
	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		return nil
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// send posts the input line. Blank input and input typed while a reply is
// pending are ignored and left in place.
func (m *Model) send() tea.Cmd {
	text, ok := m.session.Send(m.input.Value())
	if !ok {
		return nil
	}
	m.input.Reset()
	m.refresh()

	if m.backend == nil {
		m.session.Fail(nil)
		m.refresh()
		return nil
	}
	b := m.backend
	return func() tea.Msg {
		reply, err := b.SendChat(context.Background(), text)
		return ReplyMsg{Reply: reply, Err: err}
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-10, 10)
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-6, 0)
	m.refresh()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Send, m.keys.Clear, m.keys.Scroll}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Send, m.keys.Clear, m.keys.Scroll}}
}
