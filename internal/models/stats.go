// Package models defines data structures and domain types.
package models

import "time"

// EndpointStats aggregates audit rows for one endpoint.
type EndpointStats struct {
	LastCall      time.Time
	Endpoint      string
	TotalCalls    int
	ErrorCount    int
	AvgDurationMs float64
}

// SuccessRate returns the share of successful calls as a percentage.
func (s EndpointStats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.TotalCalls-s.ErrorCount) / float64(s.TotalCalls) * 100
}

// TotalStats represents overall aggregated request statistics.
type TotalStats struct {
	TotalCalls    int
	ErrorCount    int
	AvgDurationMs float64
}

// HourlyStats represents request statistics grouped by hour.
type HourlyStats struct {
	Hour          time.Time
	TotalCalls    int
	ErrorCount    int
	AvgDurationMs float64
}
