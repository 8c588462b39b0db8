package app

import (
	"time"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// Resource names one of the overview fetch sites owned by the root model.
type Resource int

const (
	// ResourceInsights is the primary insights document.
	ResourceInsights Resource = iota
	// ResourceVisualizations is the chart series document.
	ResourceVisualizations
)

// String returns the resource name.
func (r Resource) String() string {
	switch r {
	case ResourceInsights:
		return "insights"
	case ResourceVisualizations:
		return "visualizations"
	default:
		return "unknown"
	}
}

// WindowAppliedMsg is broadcast to every tab when the user applies the draft
// window. Each panel starts its own fetch for Query.
type WindowAppliedMsg struct {
	Query models.Query
}

// InsightsLoadedMsg carries the result of one insights request.
type InsightsLoadedMsg struct {
	Response *models.InsightsResponse
	Err      error
	Token    fetch.Token
}

// VisualizationsLoadedMsg carries the result of one visualizations request.
type VisualizationsLoadedMsg struct {
	Doc   *models.VisualizationDocument
	Err   error
	Token fetch.Token
}

// RetryMsg asks the root model to re-issue an overview request with the
// query it was last issued for.
type RetryMsg struct {
	Resource Resource
}

// SessionChangedMsg is broadcast when the session file changes.
type SessionChangedMsg struct {
	Username string
	SignedIn bool
}

// AlertMsg is broadcast when the anomaly monitor raised an alert.
type AlertMsg struct {
	Event services.AlertEvent
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
