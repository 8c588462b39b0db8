package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jalikoi/analytics-tui/internal/models"
)

func TestInsertAPICall(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	call := &models.APICall{
		Endpoint:   "/api/insights",
		Method:     "GET",
		DurationMs: 150,
		StatusCode: 200,
		RequestID:  "req-123",
		WindowKey:  "period=week",
	}

	if err := db.InsertAPICall(call); err != nil {
		t.Fatalf("InsertAPICall() failed: %v", err)
	}

	if call.ID == 0 {
		t.Error("InsertAPICall() should set ID")
	}
}

func TestInsertAPICall_DefaultsMethod(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.InsertAPICall(&models.APICall{Endpoint: "/api/ml/segments", StatusCode: 200}); err != nil {
		t.Fatalf("InsertAPICall() failed: %v", err)
	}

	calls, err := db.GetRecentAPICalls(1)
	if err != nil {
		t.Fatalf("GetRecentAPICalls() failed: %v", err)
	}
	if len(calls) != 1 || calls[0].Method != "GET" {
		t.Errorf("expected default GET method, got %+v", calls)
	}
}

func TestGetRecentAPICalls(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	base := time.Now().Add(-time.Hour)
	endpoints := []string{"/api/insights", "/api/visualizations", "/api/chatbot"}
	for i, ep := range endpoints {
		call := &models.APICall{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Endpoint:   ep,
			StatusCode: 200,
		}
		if i == 2 {
			call.Method = "POST"
			call.StatusCode = 401
			call.Error = "unauthorized"
		}
		if err := db.InsertAPICall(call); err != nil {
			t.Fatalf("InsertAPICall() failed: %v", err)
		}
	}

	calls, err := db.GetRecentAPICalls(2)
	if err != nil {
		t.Fatalf("GetRecentAPICalls() failed: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].Endpoint != "/api/chatbot" {
		t.Errorf("expected newest first, got %s", calls[0].Endpoint)
	}
	if calls[0].Error != "unauthorized" || !calls[0].Failed() {
		t.Errorf("expected failed call with error, got %+v", calls[0])
	}
	if calls[1].Failed() {
		t.Errorf("expected successful call, got %+v", calls[1])
	}
}

func TestGetRecentAPICalls_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	calls, err := db.GetRecentAPICalls(10)
	if err != nil {
		t.Fatalf("GetRecentAPICalls() failed: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no calls, got %d", len(calls))
	}
}

func TestGetEndpointStats(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now()
	rows := []models.APICall{
		{Timestamp: now.Add(-2 * time.Minute), Endpoint: "/api/insights", StatusCode: 200, DurationMs: 100},
		{Timestamp: now.Add(-1 * time.Minute), Endpoint: "/api/insights", StatusCode: 500, DurationMs: 300, Error: "boom"},
		{Timestamp: now.Add(-1 * time.Minute), Endpoint: "/api/ml/anomalies", StatusCode: 0, Error: "refused"},
		{Timestamp: now.Add(-48 * time.Hour), Endpoint: "/api/insights", StatusCode: 200, DurationMs: 900},
	}
	for i := range rows {
		if err := db.InsertAPICall(&rows[i]); err != nil {
			t.Fatalf("InsertAPICall() failed: %v", err)
		}
	}

	stats, err := db.GetEndpointStats(now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetEndpointStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(stats))
	}

	insights := stats[0]
	if insights.Endpoint != "/api/insights" || insights.TotalCalls != 2 || insights.ErrorCount != 1 {
		t.Errorf("unexpected insights stats: %+v", insights)
	}
	if insights.AvgDurationMs != 200 {
		t.Errorf("AvgDurationMs = %v, want 200", insights.AvgDurationMs)
	}
	if insights.SuccessRate() != 50 {
		t.Errorf("SuccessRate() = %v, want 50", insights.SuccessRate())
	}
	if insights.LastCall.IsZero() {
		t.Error("LastCall should be parsed")
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("transport failures should count as errors: %+v", stats[1])
	}
}

func TestGetHourlyStats(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for i := 0; i < 3; i++ {
		call := &models.APICall{Endpoint: "/api/insights", StatusCode: 200, DurationMs: 100}
		if i == 0 {
			call.StatusCode = 503
		}
		if err := db.InsertAPICall(call); err != nil {
			t.Fatalf("InsertAPICall() failed: %v", err)
		}
	}

	stats, err := db.GetHourlyStats(24)
	if err != nil {
		t.Fatalf("GetHourlyStats() failed: %v", err)
	}
	if len(stats) == 0 {
		t.Fatal("expected at least one hourly bucket")
	}
	total, errs := 0, 0
	for _, s := range stats {
		total += s.TotalCalls
		errs += s.ErrorCount
	}
	if total != 3 || errs != 1 {
		t.Errorf("totals = %d calls / %d errors, want 3 / 1", total, errs)
	}
}

func TestGetTotalStats(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	stats, err := db.GetTotalStats()
	if err != nil {
		t.Fatalf("GetTotalStats() failed: %v", err)
	}
	if stats.TotalCalls != 0 || stats.ErrorCount != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	_ = db.InsertAPICall(&models.APICall{Endpoint: "/api/insights", StatusCode: 200, DurationMs: 40})
	_ = db.InsertAPICall(&models.APICall{Endpoint: "/api/insights", StatusCode: 401, DurationMs: 20})

	stats, err = db.GetTotalStats()
	if err != nil {
		t.Fatalf("GetTotalStats() failed: %v", err)
	}
	if stats.TotalCalls != 2 || stats.ErrorCount != 1 || stats.AvgDurationMs != 30 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestPruneAPICalls(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now()
	_ = db.InsertAPICall(&models.APICall{Timestamp: now.Add(-40 * 24 * time.Hour), Endpoint: "/api/insights", StatusCode: 200})
	_ = db.InsertAPICall(&models.APICall{Timestamp: now, Endpoint: "/api/insights", StatusCode: 200})

	n, err := db.PruneAPICalls(now.Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneAPICalls() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}

	calls, _ := db.GetRecentAPICalls(10)
	if len(calls) != 1 {
		t.Errorf("expected 1 remaining call, got %d", len(calls))
	}
}

func TestNullString(t *testing.T) {
	if got := nullString(""); got != (sql.NullString{}) {
		t.Errorf("nullString(\"\") = %+v, want invalid", got)
	}
	if got := nullString("x"); !got.Valid || got.String != "x" {
		t.Errorf("nullString(\"x\") = %+v", got)
	}
}
