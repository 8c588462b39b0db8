package services

import (
	"errors"
	"time"

	"github.com/jalikoi/analytics-tui/internal/db"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/metrics"
	"github.com/jalikoi/analytics-tui/internal/models"
)

// callRecorder forwards completed API calls to the Prometheus collectors and
// the audit log.
type callRecorder struct {
	database *db.DB
}

// RecordCall implements api.Recorder.
func (r callRecorder) RecordCall(call models.APICall) {
	var err error
	if call.Error != "" {
		err = errors.New(call.Error)
	}
	metrics.ObserveRequest(call.Endpoint, metrics.Outcome(call.StatusCode, err),
		time.Duration(call.DurationMs)*time.Millisecond)

	if r.database == nil {
		return
	}
	if err := r.database.InsertAPICall(&call); err != nil {
		logger.Warn("failed to record API call", "endpoint", call.Endpoint, "error", err)
	}
}
