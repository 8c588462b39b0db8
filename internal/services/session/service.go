// Package session provides the bearer credential written by the dashboard
// login flow, reloading it whenever the session file changes.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jalikoi/analytics-tui/internal/logger"
)

// DefaultUsername is shown when the session file names no user.
const DefaultUsername = "Admin"

// File is the JSON layout of the session file.
type File struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// User identifies the signed-in operator.
type User struct {
	Username string `json:"username"`
}

// EventType defines the type of session event.
type EventType int

const (
	// EventLoaded fires once after the initial read.
	EventLoaded EventType = iota
	// EventChanged fires after the file was rewritten and reloaded.
	EventChanged
	// EventError fires when the file or watcher fails.
	EventError
)

// Event represents a session service event.
type Event struct {
	Error error
	Type  EventType
}

// Service holds the current credential. The session lifecycle belongs to the
// login flow; this service only reads what it writes.
type Service struct {
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	filePath      string
	override      string
	current       File
	mu            sync.RWMutex
	closeOnce     sync.Once
}

// DefaultPath returns the default session file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jalikoi", "session.json")
}

// New reads the session file and starts watching it. A non-empty override
// token takes precedence over the file's token. A missing file is not an
// error: requests go out unauthenticated until the login flow writes it.
func New(filePath, override string) (*Service, error) {
	if filePath == "" {
		filePath = DefaultPath()
	}

	s := &Service{
		filePath:  filePath,
		override:  override,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	if filePath == "" {
		s.sendEvent(Event{Type: EventLoaded})
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := s.load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventLoaded})
	return s, nil
}

// Token returns the bearer credential, or "" when signed out.
func (s *Service) Token() string {
	if s.override != "" {
		return s.override
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Username returns the signed-in operator's name.
func (s *Service) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.User.Username == "" {
		return DefaultUsername
	}
	return s.current.User.Username
}

// Path returns the watched session file.
func (s *Service) Path() string {
	return s.filePath
}

// Events returns the event channel for subscribing to session changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	s.mu.Lock()
	s.current = f
	s.mu.Unlock()
	return nil
}

func (s *Service) clear() {
	s.mu.Lock()
	s.current = File{}
	s.mu.Unlock()
}

func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory to catch atomic renames and deletion.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			s.mu.Lock()
			if s.debounceTimer != nil {
				s.debounceTimer.Stop()
			}
			s.debounceTimer = time.AfterFunc(debounceInterval, s.handleFileChange)
			s.mu.Unlock()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the session after an external change. A deleted
// file means the operator signed out.
func (s *Service) handleFileChange() {
	err := s.load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.clear()
	case err != nil:
		logger.Warn("session reload failed", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	logger.Info("session reloaded", "path", s.filePath, "user", s.Username())
	s.sendEvent(Event{Type: EventChanged})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
