package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/api"
	"github.com/jalikoi/analytics-tui/internal/services/chat"
)

type stubBackend struct {
	app.Backend
	reply string
	err   error
	sent  []string
}

func (s *stubBackend) SendChat(_ context.Context, message string) (string, error) {
	s.sent = append(s.sent, message)
	return s.reply, s.err
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func enter(m *Model) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestNew_SeedsGreeting(t *testing.T) {
	m := New(&stubBackend{})
	m.SetSize(100, 30)
	if m.session.Len() != 1 || !strings.Contains(m.View(), "Analytics Assistant") {
		t.Errorf("greeting missing: %q", m.View())
	}
}

func TestModel_SendAndReply(t *testing.T) {
	b := &stubBackend{reply: "Revenue last month was 12,000,000 RWF."}
	m := New(b)
	m.SetSize(100, 30)

	typeText(m, "What was revenue last month?")
	cmd := enter(m)
	if cmd == nil {
		t.Fatal("enter should post the message")
	}

	msgs := m.session.Messages()
	if len(msgs) != 2 || msgs[1].Role != models.RoleUser || msgs[1].Content != "What was revenue last month?" {
		t.Fatalf("user message not appended before the reply: %+v", msgs)
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after sending")
	}
	if !m.session.Pending() {
		t.Error("session should be pending")
	}

	m.Update(cmd())

	if b.sent[0] != "What was revenue last month?" {
		t.Errorf("sent = %v", b.sent)
	}
	msgs = m.session.Messages()
	if last := msgs[len(msgs)-1]; last.Role != models.RoleAssistant || last.Content != b.reply {
		t.Errorf("last message = %+v", last)
	}
	if !strings.Contains(m.View(), "12,000,000 RWF") {
		t.Error("reply not rendered")
	}
}

func TestModel_SessionExpired(t *testing.T) {
	m := New(&stubBackend{err: &api.APIError{Endpoint: "chat", StatusCode: 401, Detail: "Not authenticated"}})
	m.SetSize(100, 30)

	typeText(m, "hello")
	m.Update(enter(m)())

	msgs := m.session.Messages()
	if last := msgs[len(msgs)-1]; last.Role != models.RoleAssistant || last.Content != chat.SessionExpired {
		t.Errorf("last message = %+v", last)
	}
}

func TestModel_FailureIsChatMessage(t *testing.T) {
	m := New(&stubBackend{err: errors.New("dial tcp: connection refused")})
	m.SetSize(100, 30)

	typeText(m, "hello")
	m.Update(enter(m)())

	if !strings.Contains(m.View(), chat.GenericFailure) {
		t.Error("failure should be shown in the transcript")
	}
	if m.session.Pending() {
		t.Error("failure should end the pending state")
	}
}

func TestModel_IgnoresBlankAndPending(t *testing.T) {
	b := &stubBackend{reply: "ok"}
	m := New(b)
	m.SetSize(100, 30)

	typeText(m, "   ")
	if enter(m) != nil {
		t.Error("blank input should not send")
	}

	typeText(m, "first")
	first := enter(m)
	typeText(m, "second")
	if enter(m) != nil {
		t.Error("second message should wait for the pending reply")
	}
	if m.input.Value() != "second" {
		t.Errorf("input = %q, want it kept", m.input.Value())
	}
	m.Update(first())
	if len(b.sent) != 1 {
		t.Errorf("sent = %v", b.sent)
	}
}

func TestModel_CapturesTypingKeys(t *testing.T) {
	m := New(nil)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyRunes, Runes: []rune("m")},
		{Type: tea.KeyEnter},
	} {
		if !m.CapturesKey(k) {
			t.Errorf("%q should reach the input", k.String())
		}
	}
	if m.CapturesKey(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Error("tab should still switch tabs")
	}
}
