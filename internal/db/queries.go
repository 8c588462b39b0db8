package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
)

// sqlFailedCall matches rows that ended in a transport error or a non-2xx
// status.
const sqlFailedCall = "(error IS NOT NULL OR status_code < 200 OR status_code >= 300)"

// InsertAPICall logs an API call to the database.
func (db *DB) InsertAPICall(call *models.APICall) error {
	query := `
		INSERT INTO api_calls (
			timestamp, endpoint, method, status_code, duration_ms,
			error, request_id, window_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := call.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	method := call.Method
	if method == "" {
		method = "GET"
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format(timestampLayout),
		call.Endpoint,
		method,
		call.StatusCode,
		call.DurationMs,
		nullString(call.Error),
		nullString(call.RequestID),
		nullString(call.WindowKey),
	)
	if err != nil {
		return fmt.Errorf("failed to insert API call: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		call.ID = id
	}

	return nil
}

// GetRecentAPICalls returns the most recent API calls.
func (db *DB) GetRecentAPICalls(limit int) ([]models.APICall, error) {
	query := `
		SELECT id, timestamp, endpoint, method, status_code, duration_ms,
			   error, request_id, window_key
		FROM api_calls
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent API calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calls []models.APICall
	for rows.Next() {
		var call models.APICall
		var errStr, reqID, windowKey sql.NullString

		err := rows.Scan(
			&call.ID,
			&call.Timestamp,
			&call.Endpoint,
			&call.Method,
			&call.StatusCode,
			&call.DurationMs,
			&errStr,
			&reqID,
			&windowKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan API call: %w", err)
		}

		call.Error = errStr.String
		call.RequestID = reqID.String
		call.WindowKey = windowKey.String
		calls = append(calls, call)
	}

	return calls, rows.Err()
}

// GetEndpointStats returns per-endpoint totals for calls made at or after
// since, busiest endpoint first.
func (db *DB) GetEndpointStats(since time.Time) ([]models.EndpointStats, error) {
	query := `
		SELECT
			endpoint,
			COUNT(*) as total_calls,
			SUM(CASE WHEN ` + sqlFailedCall + ` THEN 1 ELSE 0 END) as error_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration,
			MAX(timestamp) as last_call
		FROM api_calls
		WHERE timestamp >= ?
		GROUP BY endpoint
		ORDER BY total_calls DESC, endpoint ASC
	`

	rows, err := db.QueryContext(context.Background(), query, since.UTC().Format(timestampLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query endpoint stats: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var stats []models.EndpointStats
	for rows.Next() {
		var s models.EndpointStats
		var lastCall string

		err := rows.Scan(
			&s.Endpoint,
			&s.TotalCalls,
			&s.ErrorCount,
			&s.AvgDurationMs,
			&lastCall,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan endpoint stats: %w", err)
		}

		s.LastCall, _ = time.Parse(timestampLayout, lastCall)
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetHourlyStats returns request statistics grouped by hour, newest first.
func (db *DB) GetHourlyStats(hours int) ([]models.HourlyStats, error) {
	query := `
		SELECT
			strftime('%Y-%m-%d %H:00:00', timestamp) as hour,
			COUNT(*) as total_calls,
			SUM(CASE WHEN ` + sqlFailedCall + ` THEN 1 ELSE 0 END) as error_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration
		FROM api_calls
		WHERE timestamp >= datetime('now', ?)
		GROUP BY hour
		ORDER BY hour DESC
	`

	rows, err := db.QueryContext(context.Background(), query, fmt.Sprintf("-%d hours", hours))
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly stats: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var stats []models.HourlyStats
	for rows.Next() {
		var s models.HourlyStats
		var hourStr string

		if err := rows.Scan(&hourStr, &s.TotalCalls, &s.ErrorCount, &s.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan hourly stats: %w", err)
		}

		s.Hour, _ = time.Parse(timestampLayout, hourStr)
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetTotalStats returns overall aggregated statistics.
func (db *DB) GetTotalStats() (*models.TotalStats, error) {
	query := `
		SELECT
			COUNT(*) as total_calls,
			COALESCE(SUM(CASE WHEN ` + sqlFailedCall + ` THEN 1 ELSE 0 END), 0) as error_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration
		FROM api_calls
	`

	var stats models.TotalStats
	err := db.QueryRowContext(context.Background(), query).Scan(
		&stats.TotalCalls,
		&stats.ErrorCount,
		&stats.AvgDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query total stats: %w", err)
	}

	return &stats, nil
}

// PruneAPICalls deletes calls older than the cutoff and returns how many
// rows were removed.
func (db *DB) PruneAPICalls(olderThan time.Time) (int64, error) {
	result, err := db.ExecContext(context.Background(),
		"DELETE FROM api_calls WHERE timestamp < ?", olderThan.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune API calls: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned API calls: %w", err)
	}
	return n, nil
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
