package info

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/config"
	"github.com/jalikoi/analytics-tui/internal/models"
)

type stubAudit struct {
	err   error
	calls int
}

func (s *stubAudit) GetEndpointStats(time.Time) ([]models.EndpointStats, error) {
	return []models.EndpointStats{
		{Endpoint: "insights", TotalCalls: 4, ErrorCount: 1, AvgDurationMs: 120, LastCall: time.Now()},
	}, nil
}

func (s *stubAudit) GetHourlyStats(int) ([]models.HourlyStats, error) {
	return []models.HourlyStats{{TotalCalls: 1}, {TotalCalls: 3}}, nil
}

func (s *stubAudit) GetTotalStats() (*models.TotalStats, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.TotalStats{TotalCalls: 1234, ErrorCount: 2, AvgDurationMs: 95}, nil
}

func (s *stubAudit) GetRecentCalls(int) ([]models.APICall, error) {
	return []models.APICall{
		{Endpoint: "insights", StatusCode: 200, DurationMs: 80, Timestamp: time.Now()},
		{Endpoint: "ml/anomalies", StatusCode: 503, DurationMs: 40, Timestamp: time.Now()},
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:     "http://analytics.internal:8000",
		DatabasePath:   "/tmp/jalikoi.db",
		LogLevel:       "info",
		RequestTimeout: 30 * time.Second,
		Panels:         config.DefaultPanelLimits(),
	}
}

func newLoaded(t *testing.T, audit *stubAudit) *Model {
	t.Helper()
	m := New(app.NewState(), testConfig(), audit)
	m.SetSize(120, 200)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should load stats")
	}
	m.Update(cmd())
	return m
}

func TestModel_ViewConfigAndSession(t *testing.T) {
	state := app.NewState()
	state.SetSession("Alice", true)
	m := New(state, testConfig(), nil)
	m.SetSize(120, 200)

	view := m.View()
	for _, want := range []string{
		"http://analytics.internal:8000",
		"/tmp/jalikoi.db",
		"limit 10, min probability 30.0%",
		"limit 50",
		"Alice",
		"signed in",
		"Audit log unavailable",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewNilConfig(t *testing.T) {
	m := New(app.NewState(), nil, nil)
	m.SetSize(80, 100)
	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("nil config should be reported")
	}
}

func TestModel_UsageStats(t *testing.T) {
	m := newLoaded(t, &stubAudit{})
	view := m.View()
	for _, want := range []string{"1,234", "95 ms", "insights", "75%", "ml/anomalies", "503"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_UsageError(t *testing.T) {
	m := newLoaded(t, &stubAudit{err: errors.New("database is locked")})
	if !strings.Contains(m.View(), "database is locked") {
		t.Error("stats error not shown")
	}
}

func TestModel_Refresh(t *testing.T) {
	audit := &stubAudit{}
	m := newLoaded(t, audit)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("r should reload stats")
	}
	m.Update(cmd())

	_, cmd = m.Update(app.InsightsLoadedMsg{})
	if cmd == nil {
		t.Fatal("a completed insights request should reload stats")
	}
	m.Update(cmd())

	if audit.calls != 3 {
		t.Errorf("stats loaded %d times, want 3", audit.calls)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings missing")
	}
}
