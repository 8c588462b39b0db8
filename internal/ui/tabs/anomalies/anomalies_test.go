package anomalies

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services"
)

type stubBackend struct {
	app.Backend
	doc *models.AnomaliesDocument
	err error
}

func (s stubBackend) LoadAnomalies(context.Context, models.Query) (*models.AnomaliesDocument, error) {
	return s.doc, s.err
}

func load(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(app.WindowAppliedMsg{Query: models.Query{StartDate: "2026-03-01", EndDate: "2026-03-31"}})
	if cmd == nil {
		t.Fatal("window applied should start a load")
	}
	m.Update(cmd())
}

func TestModel_RendersAnomalies(t *testing.T) {
	m := New(stubBackend{doc: &models.AnomaliesDocument{
		Period:                    &models.Period{StartDate: "2026-03-01", EndDate: "2026-03-31"},
		TotalAnomaliesDetected:    2,
		TotalTransactionsAnalyzed: 12500,
		AnomalyRate:               0.02,
		Anomalies: []models.Anomaly{
			{TransactionID: "T-9", CustomerID: "C-1", StationID: "S-4", RiskLevel: models.AnomalyHigh, Amount: 250000, AnomalyScore: -0.31, PaymentStatus: 500},
			{TransactionID: "T-3", CustomerID: "C-2", StationID: "S-1", RiskLevel: models.AnomalyMedium, Amount: 90000, AnomalyScore: -0.12, PaymentStatus: 200},
		},
	}})
	m.SetSize(160, 60)
	load(t, m)

	view := m.View()
	for _, want := range []string{
		"Period: 2026-03-01 to 2026-03-31",
		"Model: " + models.DefaultAnomalyModel,
		"12,500",
		"0.02%",
		"250,000",
		"High Risk",
		"Failed",
		"Success",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Index(view, "T-9") > strings.Index(view, "T-3") {
		t.Error("server ranking must be kept")
	}
}

func TestModel_AllClear(t *testing.T) {
	m := New(stubBackend{doc: &models.AnomaliesDocument{ModelType: "LOF"}})
	m.SetSize(120, 40)
	load(t, m)

	view := m.View()
	if !strings.Contains(view, "All clear") || !strings.Contains(view, "Model: LOF") {
		t.Errorf("view = %q", view)
	}
}

func TestModel_FailureOffersRetry(t *testing.T) {
	m := New(stubBackend{err: errors.New("anomalies: upstream timeout (status 504)")})
	m.SetSize(120, 40)
	load(t, m)

	view := m.View()
	if !strings.Contains(view, "upstream timeout") || !strings.Contains(view, "r retry") {
		t.Errorf("view = %q", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "upstream timeout") {
		t.Error("esc should dismiss the error")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}); cmd == nil {
		t.Error("r should re-issue the request")
	}
}

func TestModel_AlertBanner(t *testing.T) {
	m := New(stubBackend{doc: &models.AnomaliesDocument{}})
	m.SetSize(120, 40)
	load(t, m)

	m.Update(app.AlertMsg{Event: services.AlertEvent{Body: "3 high-risk transactions flagged (previously 1)", HighRiskCount: 3, Previous: 1}})
	if !strings.Contains(m.View(), "3 high-risk transactions flagged") {
		t.Fatal("alert banner not shown")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "high-risk transactions flagged") {
		t.Error("esc should clear the alert")
	}
}
