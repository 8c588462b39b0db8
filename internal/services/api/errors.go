package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrRosterUnavailable is returned when the roster endpoint answers with
// success=false.
var ErrRosterUnavailable = errors.New("segment roster unavailable")

// APIError is a non-2xx response from the analytics API. Detail is set only
// when the backend answered with a JSON detail field; Body keeps whatever
// else came back.
type APIError struct {
	Endpoint   string
	Detail     string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, msg, e.StatusCode)
}

// newAPIError extracts the human-readable detail from an error body. The
// backend sends {"detail": "..."}; a proxy page or empty body only ends up
// in Body.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	e := &APIError{Endpoint: endpoint, StatusCode: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			e.Detail = s
		} else {
			e.Detail = string(payload.Detail)
		}
	}
	if e.Detail == "" {
		e.Body = strings.TrimSpace(string(body))
	}
	return e
}

// IsUnauthorized reports whether err is an expired or missing session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsModelNotTrained reports whether err indicates the backend models have
// not been trained yet.
func IsModelNotTrained(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "not available") || strings.Contains(msg, "Train models")
}

// DetailOf returns the detail message the backend put in its JSON error
// body, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
