package predictions

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
)

type stubBackend struct {
	app.Backend
	load func(q models.Query) (*models.Predictions, error)
}

func (s stubBackend) LoadPredictions(_ context.Context, q models.Query) (*models.Predictions, error) {
	return s.load(q)
}

func apply(t *testing.T, m *Model, q models.Query) {
	t.Helper()
	_, cmd := m.Update(app.WindowAppliedMsg{Query: q})
	if cmd == nil {
		t.Fatal("window applied should start a load")
	}
	m.Update(cmd())
}

func TestModel_RendersPredictions(t *testing.T) {
	acc := 0.87
	m := New(stubBackend{load: func(models.Query) (*models.Predictions, error) {
		return &models.Predictions{
			ModelInfo: &models.ModelInfo{Models: map[string]bool{"churn": true, "forecast": true, "segments": false}},
			Churn: models.ChurnPredictions{
				ModelType:     "RandomForest",
				ModelAccuracy: &acc,
				HighRiskCount: 1,
				CustomersAtRisk: []models.ChurnCustomer{
					{CustomerID: "501", ChurnProbability: 0.82, RiskLevel: "High Risk", TotalSpent: 42000},
					{CustomerID: "502", ChurnProbability: 0.45, RiskLevel: "Medium Risk"},
				},
			},
			Revenue: models.RevenueForecast{
				ModelType:              "GradientBoosting",
				TotalForecastedRevenue: 1250000,
				ForecastPeriodMonths:   3,
				TopCustomersForecast: []models.CustomerForecast{
					{CustomerID: "900", PredictedRevenue: 300000, Confidence: "high"},
				},
			},
		}, nil
	}})
	m.SetSize(140, 60)
	apply(t, m, models.Query{StartDate: "2026-02-01", EndDate: "2026-02-28"})

	view := m.View()
	for _, want := range []string{
		"Models Active: 2/3",
		"RandomForest",
		"87.0%",
		"82.0%",
		"High Risk",
		"3-month total: 1,250,000",
		"300,000",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Index(view, "501") > strings.Index(view, "502") {
		t.Error("rows must keep server ranking")
	}
}

func TestModel_ModelNotTrained(t *testing.T) {
	m := New(stubBackend{load: func(models.Query) (*models.Predictions, error) {
		return nil, errors.New("churn-predictions: Churn model not available. Train models first. (status 503)")
	}})
	m.SetSize(120, 40)
	apply(t, m, models.Query{})

	view := m.View()
	if !strings.Contains(view, presenter.Remediation[0]) {
		t.Errorf("remediation missing: %q", view)
	}
	if strings.Contains(view, "r retry") {
		t.Error("model-not-trained failure should not offer retry")
	}
}

func TestModel_RetryAfterFailure(t *testing.T) {
	calls := 0
	m := New(stubBackend{load: func(models.Query) (*models.Predictions, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return &models.Predictions{}, nil
	}})
	m.SetSize(120, 40)
	apply(t, m, models.Query{Period: "week"})

	if !strings.Contains(m.View(), "connection reset") {
		t.Fatal("failure not shown")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("retry returned no command")
	}
	m.Update(cmd())

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if view := m.View(); !strings.Contains(view, "No customers at risk") {
		t.Errorf("view after retry = %q", view)
	}
}

func TestModel_StaleResultDropped(t *testing.T) {
	m := New(stubBackend{load: func(q models.Query) (*models.Predictions, error) {
		return &models.Predictions{Churn: models.ChurnPredictions{ModelType: q.StartDate}}, nil
	}})
	m.SetSize(120, 40)

	_, first := m.Update(app.WindowAppliedMsg{Query: models.Query{StartDate: "2026-01-01", EndDate: "2026-01-02"}})
	_, second := m.Update(app.WindowAppliedMsg{Query: models.Query{StartDate: "2026-05-01", EndDate: "2026-05-02"}})
	m.Update(second())
	m.Update(first())

	if view := m.View(); !strings.Contains(view, "2026-05-01") || strings.Contains(view, "2026-01-01") {
		t.Errorf("stale response overwrote newer data: %q", view)
	}
}
