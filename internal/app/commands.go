package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// Backend is the analytics data source used by the root model and tabs.
// *services.Manager implements it.
type Backend interface {
	LoadInsights(ctx context.Context, q models.Query) (*models.InsightsResponse, error)
	LoadVisualizations(ctx context.Context, q models.Query) (*models.VisualizationDocument, error)
	LoadPredictions(ctx context.Context, q models.Query) (*models.Predictions, error)
	LoadSegments(ctx context.Context, q models.Query) (*models.SegmentsDocument, error)
	LoadSegmentRoster(ctx context.Context, segment string, q models.Query) (*models.SegmentRoster, error)
	LoadAnomalies(ctx context.Context, q models.Query) (*models.AnomaliesDocument, error)
	SendChat(ctx context.Context, message string) (string, error)
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInsightsCmd issues the insights request tagged with tok.
func loadInsightsCmd(b Backend, q models.Query, tok fetch.Token) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.LoadInsights(context.Background(), q)
		return InsightsLoadedMsg{Token: tok, Response: resp, Err: err}
	}
}

// loadVisualizationsCmd issues the visualizations request tagged with tok.
func loadVisualizationsCmd(b Backend, q models.Query, tok fetch.Token) tea.Cmd {
	return func() tea.Msg {
		doc, err := b.LoadVisualizations(context.Background(), q)
		return VisualizationsLoadedMsg{Token: tok, Doc: doc, Err: err}
	}
}

// windowAppliedCmd broadcasts the applied query to every tab.
func windowAppliedCmd(q models.Query) tea.Cmd {
	return func() tea.Msg {
		return WindowAppliedMsg{Query: q}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// NotifySuccess returns a command that adds a success notification.
func NotifySuccess(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// NotifyError returns a command that adds an error notification.
func NotifyError(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// NotifyWarning returns a command that adds a warning notification.
func NotifyWarning(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// NotifyInfo returns a command that adds an info notification.
func NotifyInfo(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Retry returns a command asking the root model to re-issue r.
func Retry(r Resource) tea.Cmd {
	return func() tea.Msg {
		return RetryMsg{Resource: r}
	}
}
