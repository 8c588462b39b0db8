// Package panel provides the fetch lifecycle shared by the tabs that load
// their own document from the analytics API.
package panel

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
	"github.com/jalikoi/analytics-tui/internal/ui/components"
)

// Loader fetches the panel document for a resolved window.
type Loader[T any] func(ctx context.Context, q models.Query) (T, error)

// LoadedMsg carries the result of one panel request. Panel disambiguates
// panels that load the same document type.
type LoadedMsg[T any] struct {
	Data  T
	Err   error
	Panel string
	Token fetch.Token
}

// Panel is one independently failable fetch site. It starts a request each
// time a window is applied and drops results that are no longer current.
type Panel[T any] struct {
	load    Loader[T]
	name    string
	spinner components.LoadingSpinner
	slot    fetch.Slot[T]
}

// New creates a panel named name that fetches with load.
func New[T any](name, loadingLabel string, load Loader[T]) *Panel[T] {
	return &Panel[T]{
		name:    name,
		load:    load,
		spinner: components.NewSpinner(loadingLabel),
	}
}

// Init starts the spinner animation.
func (p *Panel[T]) Init() tea.Cmd {
	return p.spinner.Tick()
}

// Slot exposes the fetch state for rendering.
func (p *Panel[T]) Slot() *fetch.Slot[T] {
	return &p.slot
}

// Spinner returns the panel's activity indicator.
func (p *Panel[T]) Spinner() components.LoadingSpinner {
	return p.spinner
}

// Start issues a request for q, superseding any request in flight.
func (p *Panel[T]) Start(q models.Query) tea.Cmd {
	if p.load == nil {
		return nil
	}
	tok := p.slot.Begin(q)
	name, load := p.name, p.load
	return func() tea.Msg {
		data, err := load(context.Background(), q)
		return LoadedMsg[T]{Panel: name, Token: tok, Data: data, Err: err}
	}
}

// Retry re-issues the last request with the window it was issued for.
func (p *Panel[T]) Retry() tea.Cmd {
	if !p.slot.Issued() {
		return nil
	}
	return p.Start(p.slot.Query())
}

// Update applies window, result and spinner messages to the panel.
func (p *Panel[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.WindowAppliedMsg:
		return p.Start(msg.Query)

	case LoadedMsg[T]:
		if msg.Panel != p.name {
			return nil
		}
		if msg.Err != nil {
			if p.slot.Fail(msg.Token, msg.Err) {
				logger.Warn("panel request failed", "panel", p.name, "error", msg.Err)
			}
			return nil
		}
		if !p.slot.Resolve(msg.Token, msg.Data) {
			logger.Debug("dropped stale panel response", "panel", p.name, "token", msg.Token)
		}

	default:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}
	return nil
}

// Keys are the bindings every fetching tab understands.
type Keys struct {
	Retry   key.Binding
	Dismiss key.Binding
}

// DefaultKeys returns the retry and dismiss bindings.
func DefaultKeys() Keys {
	return Keys{
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry/refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss error"),
		),
	}
}
