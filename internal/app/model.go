// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview shows the insights document.
	TabOverview TabID = iota
	// TabCustomers shows the top customer and station tables.
	TabCustomers
	// TabCharts shows the visualization series.
	TabCharts
	// TabPredictions shows churn predictions and the revenue forecast.
	TabPredictions
	// TabSegments shows customer segments and the roster drill-down.
	TabSegments
	// TabAnomalies shows flagged transactions.
	TabAnomalies
	// TabAssistant is the conversational query session.
	TabAssistant
	// TabInfo shows configuration and API call statistics.
	TabInfo

	tabCount
)

var tabNames = [tabCount]string{
	"Overview", "Customers", "Charts", "Predictions",
	"Segments", "Anomalies", "Assistant", "Info",
}

// String returns the string representation of the TabID.
func (t TabID) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabNames[t]
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyCapturer is implemented by tabs that need keys the root model would
// otherwise treat as global shortcuts, such as a focused text input.
type KeyCapturer interface {
	CapturesKey(msg tea.KeyMsg) bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tabs      [tabCount]key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Yesterday key.Binding
	Week      key.Binding
	Month     key.Binding
	All       key.Binding
	Custom    key.Binding
	Compare   key.Binding
	Apply     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Escape    key.Binding
	NextField key.Binding
	Submit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	k := KeyMap{}
	for i := range k.Tabs {
		n := fmt.Sprintf("%d", i+1)
		k.Tabs[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, strings.ToLower(tabNames[i])))
	}
	k.NextTab = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab"))

	k.Yesterday = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yesterday"))
	k.Week = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "last week"))
	k.Month = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "last month"))
	k.All = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all time"))
	k.Custom = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "custom range"))
	k.Compare = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle compare"))
	k.Apply = key.NewBinding(key.WithKeys("enter", "f"), key.WithHelp("enter/f", "apply filters"))

	k.Refresh = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry/refresh"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	k.ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/close"))
	k.NextField = key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"))
	k.Submit = key.NewBinding(key.WithKeys("enter"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Apply, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tabs[:],
		{k.NextTab, k.PrevTab},
		{k.Yesterday, k.Week, k.Month, k.All, k.Custom, k.Compare, k.Apply},
		{k.Refresh, k.Escape, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	User        lipgloss.Style

	FilterBar    lipgloss.Style
	FilterActive lipgloss.Style
	FilterKey    lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 1)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.User = lipgloss.NewStyle().Foreground(info)

	s.FilterBar = lipgloss.NewStyle().Padding(0, 2)
	s.FilterActive = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.FilterKey = lipgloss.NewStyle().Foreground(subtle)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// chromeHeight is the number of lines used by the navbar and filter bar.
const chromeHeight = 5

// Model is the main application model. It owns the time window and the two
// overview fetch slots; every other panel owns its own fetch state.
type Model struct {
	state        *State
	services     *services.Manager
	backend      Backend
	eventChannel chan services.ServiceEvent
	form         *dateForm

	tabs    []Tab
	keymap  KeyMap
	styles  Styles
	spinner spinner.Model

	activeTab TabID
	width     int
	height    int
	showHelp  bool
	ready     bool
}

// NewModel initializes a new application model with the window preset
// selected at start-up.
func NewModel(mgr *services.Manager, preset models.Preset) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	state := NewState()
	state.SetWindow(models.NewTimeWindow(preset))

	m := &Model{
		activeTab: TabOverview,
		tabs:      make([]Tab, tabCount),
		state:     state,
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
	if mgr != nil {
		m.backend = mgr
		state.SetSession(mgr.Username(), mgr.SignedIn())
	}
	return m
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model and issues the initial fetch cycle.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	cmds = append(cmds, m.applyWindow())

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model. Key messages reach only the
// active tab; every other message is broadcast so hidden panels keep their
// own state machines current.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		cmds = append(cmds, cmd)
		if !handled {
			cmds = append(cmds, m.updateActiveTab(msg))
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	cmds = append(cmds, m.broadcast(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case InsightsLoadedMsg:
		m.handleInsightsLoaded(msg)
	case VisualizationsLoadedMsg:
		m.handleVisualizationsLoaded(msg)
	case RetryMsg:
		cmds = append(cmds, m.retry(msg.Resource))
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ErrorMsg:
		cmds = append(cmds, NotifyError(msg.Error.Error()))
	case TabSwitchMsg:
		m.switchTab(msg.Tab)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

// applyWindow resolves the draft window and starts a fetch cycle: both
// overview requests here, each ML panel on receipt of WindowAppliedMsg.
func (m *Model) applyWindow() tea.Cmd {
	q, err := m.state.Apply()
	if err != nil {
		return NotifyWarning(fmt.Sprintf("Cannot apply filters: %v", err))
	}
	logger.Debug("window applied", "query", q.String())
	return tea.Batch(
		m.startInsights(q),
		m.startVisualizations(q),
		windowAppliedCmd(q),
	)
}

func (m *Model) startInsights(q models.Query) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	tok := m.state.Insights().Begin(q)
	return loadInsightsCmd(m.backend, q, tok)
}

func (m *Model) startVisualizations(q models.Query) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	tok := m.state.Visuals().Begin(q)
	return loadVisualizationsCmd(m.backend, q, tok)
}

// retry re-issues the last request of r with the query it was issued for.
func (m *Model) retry(r Resource) tea.Cmd {
	switch r {
	case ResourceInsights:
		if slot := m.state.Insights(); slot.Issued() {
			return m.startInsights(slot.Query())
		}
	case ResourceVisualizations:
		if slot := m.state.Visuals(); slot.Issued() {
			return m.startVisualizations(slot.Query())
		}
	}
	return nil
}

func (m *Model) handleInsightsLoaded(msg InsightsLoadedMsg) {
	slot := m.state.Insights()
	if msg.Err != nil {
		if slot.Fail(msg.Token, msg.Err) {
			logger.Warn("insights request failed", "error", msg.Err)
		}
		return
	}
	if slot.Resolve(msg.Token, msg.Response) {
		m.state.Touch()
	} else {
		logger.Debug("dropped stale insights response", "token", msg.Token)
	}
}

func (m *Model) handleVisualizationsLoaded(msg VisualizationsLoadedMsg) {
	slot := m.state.Visuals()
	if msg.Err != nil {
		if slot.Fail(msg.Token, msg.Err) {
			logger.Warn("visualizations request failed", "error", msg.Err)
		}
		return
	}
	if slot.Resolve(msg.Token, msg.Doc) {
		m.state.Touch()
	} else {
		logger.Debug("dropped stale visualizations response", "token", msg.Token)
	}
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.SessionChangedEvent:
		m.state.SetSession(e.Username, e.SignedIn)
		return func() tea.Msg {
			return SessionChangedMsg{Username: e.Username, SignedIn: e.SignedIn}
		}

	case services.AlertEvent:
		return tea.Batch(
			NotifyWarning(e.Body),
			func() tea.Msg { return AlertMsg{Event: e} },
		)

	case services.ErrorEvent:
		return NotifyError(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

// broadcast delivers a non-key message to every tab.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, tab := range m.tabs {
		if tab == nil {
			continue
		}
		var cmd tea.Cmd
		m.tabs[i], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if tab := m.currentTab(); tab != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = tab.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) currentTab() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-chromeHeight)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(t TabID) {
	if t < 0 || int(t) >= len(m.tabs) {
		return
	}
	m.activeTab = t
}

// handleKeyMsg handles keyboard input. It reports whether the key was
// consumed as a global shortcut.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return tea.Quit, true
	}

	if m.form != nil {
		return m.updateForm(msg), true
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Escape) {
			m.showHelp = false
		}
		return nil, true
	}

	if c, ok := m.currentTab().(KeyCapturer); ok && c.CapturesKey(msg) {
		return nil, false
	}

	for i, b := range m.keymap.Tabs {
		if key.Matches(msg, b) {
			m.switchTab(TabID(i))
			return nil, true
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.Yesterday):
		m.selectPreset(models.PresetYesterday)
		return nil, true

	case key.Matches(msg, m.keymap.Week):
		m.selectPreset(models.PresetWeek)
		return nil, true

	case key.Matches(msg, m.keymap.Month):
		m.selectPreset(models.PresetMonth)
		return nil, true

	case key.Matches(msg, m.keymap.All):
		m.selectPreset(models.PresetAll)
		return nil, true

	case key.Matches(msg, m.keymap.Custom):
		m.form = newDateForm(m.state.Window())
		return nil, true

	case key.Matches(msg, m.keymap.Compare):
		m.state.EditWindow(func(w *models.TimeWindow) { w.ToggleCompare() })
		return nil, true

	case key.Matches(msg, m.keymap.Apply):
		return m.applyWindow(), true
	}

	return nil, false
}

func (m *Model) selectPreset(p models.Preset) {
	m.state.EditWindow(func(w *models.TimeWindow) { w.SelectPreset(p) })
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Escape):
		m.form = nil
		return nil

	case key.Matches(msg, m.keymap.NextField):
		m.form.toggleFocus()
		return nil

	case key.Matches(msg, m.keymap.Submit):
		start, end, err := m.form.values()
		if err != nil {
			return NotifyWarning(err.Error())
		}
		m.state.EditWindow(func(w *models.TimeWindow) {
			w.SetStart(start)
			w.SetEnd(end)
		})
		m.form = nil
		return nil
	}
	return m.form.update(msg)
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if tab := m.currentTab(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	switch {
	case m.form != nil:
		mainView = components.PlaceOverlay(mainView, m.form.view(), m.width, m.height)
	case m.showHelp:
		mainView = components.PlaceOverlay(mainView, m.renderHelp(), m.width, m.height)
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return components.PlaceToasts(mainView, toasts, m.width)
	}

	return mainView
}

func (m *Model) renderNavbar() string {
	var tabs []string
	for i := range m.tabs {
		name := TabID(i).String()
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	user := m.styles.User.Render("● " + m.state.Username())
	if !m.state.SignedIn() {
		user = m.styles.Subtle.Render("○ " + m.state.Username())
	}
	gap := max(1, m.width-lipgloss.Width(tabBar)-lipgloss.Width(user)-4)

	return m.styles.TabBar.Width(m.width).Render(tabBar + strings.Repeat(" ", gap) + user)
}

func (m *Model) renderFilterBar() string {
	w := m.state.Window()

	var presets []string
	for _, p := range []struct {
		preset models.Preset
		key    string
	}{
		{models.PresetYesterday, "y"},
		{models.PresetWeek, "w"},
		{models.PresetMonth, "m"},
		{models.PresetAll, "a"},
		{models.PresetCustom, "u"},
	} {
		label := fmt.Sprintf("%s %s", m.styles.FilterKey.Render(p.key), p.preset.Label())
		if w.Preset == p.preset {
			label = m.styles.FilterActive.Render(fmt.Sprintf("%s %s", p.key, p.preset.Label()))
		}
		presets = append(presets, label)
	}

	compare := m.styles.FilterKey.Render("x") + " compare"
	if w.Compare {
		compare = m.styles.FilterActive.Render("x compare ✓")
	}

	line := fmt.Sprintf("Period: %s  │  %s  │  %s  │  %s apply",
		w.Describe(),
		strings.Join(presets, "  "),
		compare,
		m.styles.FilterKey.Render("f"),
	)
	if q, ok := m.state.Applied(); ok {
		line += m.styles.Subtle.Render("  (showing " + q.String() + ")")
	}
	return m.styles.FilterBar.Render(line)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-8        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Filters"))
	lines = append(lines, "  y/w/m/a    Yesterday / week / month / all time")
	lines = append(lines, "  u          Custom date range")
	lines = append(lines, "  x          Toggle comparison")
	lines = append(lines, "  Enter/f    Apply filters")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	lines = append(lines, "  r          Retry or refresh this tab")
	lines = append(lines, "  Esc        Dismiss error / close overlay")
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")

	if tab := m.currentTab(); tab != nil {
		if tabHelp := tab.ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, "")
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.activeTab)))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.activeTab,
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
