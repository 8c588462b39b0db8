// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jalikoi/analytics-tui/internal/config"
	"github.com/jalikoi/analytics-tui/internal/db"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/api"
	"github.com/jalikoi/analytics-tui/internal/services/session"
)

type (
	// SessionChangedEvent is emitted when the session file is loaded or
	// rewritten by the login flow.
	SessionChangedEvent struct {
		Username string
		SignedIn bool
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// AlertEvent is emitted when the high-risk anomaly count rises between
	// two successful anomaly loads.
	AlertEvent struct {
		Title         string
		Body          string
		HighRiskCount int
		Previous      int
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}
func (AlertEvent) isServiceEvent()          {}

// Notifier raises a desktop notification.
type Notifier func(title, body string) error

func desktopNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notify = n
		}
	}
}

// WithHTTPClient replaces the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Manager) { m.httpClient = hc }
}

// Manager orchestrates services and event routing.
type Manager struct {
	client      *api.Client
	session     *session.Service
	database    *db.DB
	httpClient  *http.Client
	notify      Notifier
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	rosters     singleflight.Group
	panels      config.PanelLimits
	baseURL     string
	mu          sync.RWMutex

	alertMu   sync.Mutex
	highRisk  map[string]int
	closeOnce sync.Once
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		stopChan:  make(chan struct{}),
		notify:    desktopNotify,
		highRisk:  make(map[string]int),
		panels:    cfg.Panels,
		baseURL:   cfg.APIBaseURL,
	}
	for _, opt := range opts {
		opt(m)
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.AuditRetention > 0 {
		pruned, err := m.database.PruneAPICalls(time.Now().Add(-cfg.AuditRetention))
		if err != nil {
			logger.Warn("failed to prune audit log", "error", err)
		} else if pruned > 0 {
			logger.Info("pruned audit log", "rows", pruned)
			if err := m.database.Vacuum(); err != nil {
				logger.Warn("failed to vacuum audit log", "error", err)
			}
		}
	}

	m.session, err = session.New(cfg.SessionPath, cfg.APIToken)
	if err != nil {
		if closeErr := m.database.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
		return nil, err
	}

	m.client = api.NewClient(cfg.APIBaseURL, m.session,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithHTTPClient(m.httpClient),
		api.WithRecorder(callRecorder{database: m.database}),
	)

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.session.Events():
			m.handleSessionEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSessionEvent(event session.Event) {
	switch event.Type {
	case session.EventLoaded, session.EventChanged:
		m.broadcast(SessionChangedEvent{
			Username: m.session.Username(),
			SignedIn: m.session.Token() != "",
		})

	case session.EventError:
		m.broadcast(ErrorEvent{
			Service: "session",
			Error:   event.Error,
		})
	}
}

// LoadInsights fetches the primary insights document for q.
func (m *Manager) LoadInsights(ctx context.Context, q models.Query) (*models.InsightsResponse, error) {
	return m.client.Insights(ctx, q)
}

// LoadVisualizations fetches the chart series for q.
func (m *Manager) LoadVisualizations(ctx context.Context, q models.Query) (*models.VisualizationDocument, error) {
	return m.client.Visualizations(ctx, q)
}

// LoadPredictions checks model availability, then fetches churn predictions
// and the revenue forecast concurrently. The availability check is best
// effort; either detailed fetch failing fails the panel.
func (m *Manager) LoadPredictions(ctx context.Context, q models.Query) (*models.Predictions, error) {
	p := &models.Predictions{}

	info, err := m.client.ModelInfo(ctx)
	if err != nil {
		logger.Warn("model info check failed", "error", err)
	} else {
		p.ModelInfo = info
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		churn, err := m.client.ChurnPredictions(gctx, q, api.ChurnParams{
			MinProbability: m.panels.ChurnMinProbability,
			Limit:          m.panels.ChurnLimit,
		})
		if err != nil {
			return err
		}
		p.Churn = *churn
		return nil
	})
	g.Go(func() error {
		forecast, err := m.client.RevenueForecast(gctx, q, m.panels.ForecastTopN)
		if err != nil {
			return err
		}
		p.Revenue = *forecast
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadSegments fetches the customer clusters for q.
func (m *Manager) LoadSegments(ctx context.Context, q models.Query) (*models.SegmentsDocument, error) {
	return m.client.Segments(ctx, q)
}

// LoadSegmentRoster fetches one segment's customers. Concurrent calls for
// the same segment and window share a single request.
func (m *Manager) LoadSegmentRoster(ctx context.Context, segment string, q models.Query) (*models.SegmentRoster, error) {
	key := segment + "|" + q.RangeKey()
	v, err, shared := m.rosters.Do(key, func() (any, error) {
		return m.client.SegmentCustomers(ctx, segment, q)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("segment roster request shared", "segment", segment)
	}
	return v.(*models.SegmentRoster), nil
}

// LoadAnomalies fetches flagged transactions for q and raises an alert when
// the high-risk count grew since the previous successful load of the same
// date range.
func (m *Manager) LoadAnomalies(ctx context.Context, q models.Query) (*models.AnomaliesDocument, error) {
	doc, err := m.client.Anomalies(ctx, q, m.panels.AnomalyLimit)
	if err != nil {
		return nil, err
	}
	m.checkAnomalyAlert(q.RangeKey(), doc)
	return doc, nil
}

func (m *Manager) checkAnomalyAlert(rangeKey string, doc *models.AnomaliesDocument) {
	count := doc.HighRiskCount()

	m.alertMu.Lock()
	previous, seen := m.highRisk[rangeKey]
	m.highRisk[rangeKey] = count
	m.alertMu.Unlock()

	if !seen || count <= previous {
		return
	}

	alert := AlertEvent{
		Title:         "High-risk anomalies detected",
		Body:          fmt.Sprintf("%d high-risk transactions flagged (previously %d)", count, previous),
		HighRiskCount: count,
		Previous:      previous,
	}
	if err := m.notify(alert.Title, alert.Body); err != nil {
		logger.Warn("desktop notification failed", "error", err)
	}
	m.broadcast(alert)
}

// SendChat posts one message to the assistant.
func (m *Manager) SendChat(ctx context.Context, message string) (string, error) {
	return m.client.Chat(ctx, message)
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Username returns the signed-in operator shown in the header.
func (m *Manager) Username() string {
	return m.session.Username()
}

// SignedIn reports whether a bearer credential is available.
func (m *Manager) SignedIn() bool {
	return m.session.Token() != ""
}

// SessionPath returns the watched session file.
func (m *Manager) SessionPath() string {
	return m.session.Path()
}

// BaseURL returns the analytics API root.
func (m *Manager) BaseURL() string {
	return m.baseURL
}

// Panels returns the request caps sent with ML panel requests.
func (m *Manager) Panels() config.PanelLimits {
	return m.panels
}

// GetEndpointStats returns per-endpoint request totals since the given time.
func (m *Manager) GetEndpointStats(since time.Time) ([]models.EndpointStats, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.GetEndpointStats(since)
}

// GetRecentCalls returns the latest audited API calls.
func (m *Manager) GetRecentCalls(limit int) ([]models.APICall, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.GetRecentAPICalls(limit)
}

// GetHourlyStats returns request totals per hour for the last hours.
func (m *Manager) GetHourlyStats(hours int) ([]models.HourlyStats, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.GetHourlyStats(hours)
}

// GetTotalStats returns overall request totals.
func (m *Manager) GetTotalStats() (*models.TotalStats, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.GetTotalStats()
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error
	m.closeOnce.Do(func() {
		if m.stopChan != nil {
			close(m.stopChan)
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.session != nil {
			if err := m.session.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
