// Package chat holds the in-memory conversation with the analytics assistant.
package chat

import (
	"strings"
	"time"

	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/api"
)

// Canned assistant messages.
const (
	Greeting       = "Hi! I'm your Analytics Assistant. Ask me about your revenue, customers, stations, or trends!"
	SessionExpired = "Your session has expired. Please login again."
	GenericFailure = "Sorry, I encountered an error. Please try again."
	EmptyReply     = "I received your message but couldn't generate a response."
)

// Session is an append-only message log. At most one request is pending at
// a time and failures are reported as assistant messages, never retried.
type Session struct {
	now      func() time.Time
	messages []models.ChatMessage
	pending  bool
}

// NewSession returns a session seeded with the greeting.
func NewSession() *Session {
	s := &Session{now: time.Now}
	s.append(models.RoleAssistant, Greeting)
	return s
}

func (s *Session) append(role models.ChatRole, content string) {
	s.messages = append(s.messages, models.ChatMessage{
		Timestamp: s.now(),
		Role:      role,
		Content:   content,
	})
}

// Send appends the user's message and marks a reply as pending. It returns
// the trimmed text to post, or false when the input is blank or a reply is
// still pending.
func (s *Session) Send(input string) (string, bool) {
	text := strings.TrimSpace(input)
	if text == "" || s.pending {
		return "", false
	}
	s.append(models.RoleUser, text)
	s.pending = true
	return text, true
}

// Reply appends the assistant's answer.
func (s *Session) Reply(content string) {
	s.pending = false
	if strings.TrimSpace(content) == "" {
		content = EmptyReply
	}
	s.append(models.RoleAssistant, content)
}

// Fail appends an assistant message describing err.
func (s *Session) Fail(err error) {
	s.pending = false
	s.append(models.RoleAssistant, FailureMessage(err))
}

// FailureMessage maps a request error to the text shown in the log.
func FailureMessage(err error) string {
	if api.IsUnauthorized(err) {
		return SessionExpired
	}
	if detail, ok := api.DetailOf(err); ok {
		return detail
	}
	return GenericFailure
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool { return s.pending }

// Messages returns the log. The slice must not be modified.
func (s *Session) Messages() []models.ChatMessage { return s.messages }

// Len returns the number of messages.
func (s *Session) Len() int { return len(s.messages) }
