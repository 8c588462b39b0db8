// Package models defines data structures and domain types.
package models

import "time"

// APICall represents a logged request to the analytics API.
type APICall struct {
	Timestamp  time.Time
	Endpoint   string
	Method     string
	Error      string
	RequestID  string
	WindowKey  string
	ID         int64
	StatusCode int
	DurationMs int
}

// Failed reports whether the call ended in a transport error or a non-2xx
// status.
func (c APICall) Failed() bool {
	return c.Error != "" || c.StatusCode < 200 || c.StatusCode >= 300
}
