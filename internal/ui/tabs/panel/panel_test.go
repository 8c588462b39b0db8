package panel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/services/fetch"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
)

func run[T any](t *testing.T, p *Panel[T], msg any) LoadedMsg[T] {
	t.Helper()
	cmd := p.Update(msg)
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	loaded, ok := cmd().(LoadedMsg[T])
	if !ok {
		t.Fatalf("command returned %T", cmd())
	}
	return loaded
}

func TestPanel_WindowAppliedStartsLoad(t *testing.T) {
	var got models.Query
	p := New("test", "Loading", func(_ context.Context, q models.Query) (string, error) {
		got = q
		return "doc", nil
	})

	q := models.Query{StartDate: "2026-01-01", EndDate: "2026-01-31"}
	msg := run(t, p, app.WindowAppliedMsg{Query: q})
	if got != q {
		t.Errorf("loader query = %+v, want %+v", got, q)
	}
	if !p.Slot().Blocking() {
		t.Error("panel should block before first data")
	}

	p.Update(msg)
	if data, ok := p.Slot().Data(); !ok || data != "doc" {
		t.Errorf("Data() = %q, %v", data, ok)
	}
}

func TestPanel_DropsStaleAndForeignResults(t *testing.T) {
	n := 0
	p := New("mine", "Loading", func(context.Context, models.Query) (int, error) {
		n++
		return n, nil
	})

	first := run(t, p, app.WindowAppliedMsg{Query: models.Query{Period: "week"}})
	second := run(t, p, app.WindowAppliedMsg{Query: models.Query{Period: "month"}})

	p.Update(LoadedMsg[int]{Panel: "other", Token: second.Token, Data: 99})
	if p.Slot().Status() != fetch.Loading {
		t.Fatal("result for another panel must be ignored")
	}

	p.Update(second)
	p.Update(first)
	if data, _ := p.Slot().Data(); data != 2 {
		t.Errorf("Data() = %d, want newest result 2", data)
	}
	if p.Slot().Query().Period != "month" {
		t.Errorf("Query() = %+v", p.Slot().Query())
	}
}

func TestPanel_RetryReissuesLastQuery(t *testing.T) {
	var queries []models.Query
	p := New("retry", "Loading", func(_ context.Context, q models.Query) (int, error) {
		queries = append(queries, q)
		return 0, errors.New("boom")
	})

	if p.Retry() != nil {
		t.Error("Retry before any request should do nothing")
	}

	q := models.Query{Period: "yesterday", Compare: true}
	p.Update(run(t, p, app.WindowAppliedMsg{Query: q}))
	if !p.Slot().ErrorVisible() {
		t.Fatal("failure should be visible")
	}

	cmd := p.Retry()
	if cmd == nil {
		t.Fatal("Retry returned nil")
	}
	cmd()
	if len(queries) != 2 || queries[1] != q {
		t.Errorf("queries = %+v", queries)
	}
}

func TestPlaceholder(t *testing.T) {
	p := New("view", "Loading churn", func(context.Context, models.Query) (int, error) {
		return 0, errors.New("connection refused")
	})

	if view, ok := Placeholder(p.Slot(), p.Spinner(), 60, 10); !ok || !strings.Contains(view, "Apply a period") {
		t.Errorf("idle placeholder = %q", view)
	}

	msg := run(t, p, app.WindowAppliedMsg{})
	if view, ok := Placeholder(p.Slot(), p.Spinner(), 60, 10); !ok || !strings.Contains(view, "Loading churn") {
		t.Errorf("blocking placeholder = %q", view)
	}

	p.Update(msg)
	view, ok := Placeholder(p.Slot(), p.Spinner(), 60, 10)
	if !ok || !strings.Contains(view, "connection refused") || !strings.Contains(view, "r retry") {
		t.Errorf("failed placeholder = %q", view)
	}

	p.Slot().Dismiss()
	if view, _ := Placeholder(p.Slot(), p.Spinner(), 60, 10); strings.Contains(view, "connection refused") {
		t.Error("dismissed error should not render")
	}
}

func TestErrorBox_ModelNotTrained(t *testing.T) {
	view := ErrorBox(errors.New("Churn model not available. Train models first."), 80)
	for _, step := range presenter.Remediation {
		if !strings.Contains(view, step) {
			t.Errorf("remediation step %q missing from %q", step, view)
		}
	}
	if strings.Contains(view, "r retry") {
		t.Error("model-not-trained error should not offer retry")
	}
}

func TestTable(t *testing.T) {
	table := presenter.Table{
		Headers: []string{"Rank", "Customer"},
		Rows:    []presenter.Row{{"#1", "42"}, {"#2", "7"}},
	}
	out := Table(table, -1)
	if lines := strings.Split(out, "\n"); len(lines) < 3 {
		t.Errorf("Table rendered %d lines", len(lines))
	}
	if !strings.Contains(out, "#2") {
		t.Errorf("Table = %q", out)
	}
	if Table(presenter.Table{Headers: []string{"A"}}, -1) != Table(presenter.Table{}, 0) {
		t.Error("empty tables should render the same placeholder")
	}
}
