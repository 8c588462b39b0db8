// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"strconv"
	"sync"
	"time"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
	"github.com/jalikoi/analytics-tui/internal/services/session"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the dashboard-wide state shared by the root model and the tabs:
// the draft time window, the last applied query and the two fetch slots of
// the overview orchestration. Window and slots are only touched from the
// Bubble Tea update loop; the mutex guards the fields read by View helpers
// and notifications.
type State struct {
	lastUpdated time.Time
	insights    fetch.Slot[*models.InsightsResponse]
	visuals     fetch.Slot[*models.VisualizationDocument]
	applied     models.Query
	username    string
	window      models.TimeWindow

	notifications   []Notification
	notificationSeq int
	mu              sync.RWMutex
	hasApplied      bool
	signedIn        bool
}

// NewState creates the shared state with the default window.
func NewState() *State {
	return &State{
		window:        models.NewTimeWindow(models.PresetYesterday),
		username:      session.DefaultUsername,
		notifications: make([]Notification, 0),
	}
}

// Window returns a copy of the draft window.
func (s *State) Window() models.TimeWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// SetWindow replaces the draft window.
func (s *State) SetWindow(w models.TimeWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = w
}

// EditWindow mutates the draft window in place.
func (s *State) EditWindow(fn func(w *models.TimeWindow)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.window)
}

// Apply resolves the draft window into the query for the next fetch cycle.
func (s *State) Apply() (models.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.window.Resolve()
	if err != nil {
		return models.Query{}, err
	}
	s.applied = q
	s.hasApplied = true
	return q, nil
}

// Applied returns the query of the last apply action.
func (s *State) Applied() (models.Query, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied, s.hasApplied
}

// Insights returns the primary insights fetch slot.
func (s *State) Insights() *fetch.Slot[*models.InsightsResponse] {
	return &s.insights
}

// Visuals returns the visualization fetch slot.
func (s *State) Visuals() *fetch.Slot[*models.VisualizationDocument] {
	return &s.visuals
}

// SetSession records the signed-in operator.
func (s *State) SetSession(username string, signedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if username == "" {
		username = session.DefaultUsername
	}
	s.username = username
	s.signedIn = signedIn
}

// Username returns the operator shown in the header.
func (s *State) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// SignedIn reports whether a bearer credential is available.
func (s *State) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// Touch records that fresh data arrived.
func (s *State) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdated = time.Now()
}

// GetLastUpdated returns the last time data arrived.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := "n" + strconv.Itoa(s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
