package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSession(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}
}

func waitForEvent(t *testing.T, s *Service, want EventType) {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if ev.Type == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event %d", want)
		}
	}
}

func TestNew_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writeSession(t, path, `{"token":"abc","user":{"username":"alice"}}`)

	s, err := New(path, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Token() != "abc" {
		t.Errorf("Token() = %q, want abc", s.Token())
	}
	if s.Username() != "alice" {
		t.Errorf("Username() = %q, want alice", s.Username())
	}
	waitForEvent(t, s, EventLoaded)
}

func TestNew_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := New(path, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Token() != "" {
		t.Errorf("Token() = %q, want empty", s.Token())
	}
	if s.Username() != DefaultUsername {
		t.Errorf("Username() = %q, want %q", s.Username(), DefaultUsername)
	}
}

func TestNew_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writeSession(t, path, "{not json")

	if _, err := New(path, ""); err == nil {
		t.Error("New() should fail on a corrupt session file")
	}
}

func TestToken_OverrideWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writeSession(t, path, `{"token":"from-file"}`)

	s, err := New(path, "from-env")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Token() != "from-env" {
		t.Errorf("Token() = %q, want from-env", s.Token())
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := New(path, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()
	waitForEvent(t, s, EventLoaded)

	writeSession(t, path, `{"token":"fresh","user":{"username":"bob"}}`)
	waitForEvent(t, s, EventChanged)

	if s.Token() != "fresh" || s.Username() != "bob" {
		t.Errorf("after reload got token=%q user=%q", s.Token(), s.Username())
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitForEvent(t, s, EventChanged)
	if s.Token() != "" {
		t.Errorf("Token() after removal = %q, want empty", s.Token())
	}
}

func TestClose_Idempotent(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "session.json"), "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
