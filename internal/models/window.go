// Package models defines data structures and domain types.
package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for date bounds.
const DateLayout = "2006-01-02"

// Preset represents a named period selection.
type Preset int

const (
	// PresetYesterday covers the previous calendar day.
	PresetYesterday Preset = iota
	// PresetWeek covers the last seven days.
	PresetWeek
	// PresetMonth covers the last month.
	PresetMonth
	// PresetAll omits date bounds entirely.
	PresetAll
	// PresetCustom uses explicit start and end dates.
	PresetCustom
)

var presetNames = []string{"yesterday", "week", "month", "all", "custom"}

// String returns the wire name of the preset.
func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return "unknown"
	}
	return presetNames[p]
}

// Label returns the display name for a preset.
func (p Preset) Label() string {
	switch p {
	case PresetYesterday:
		return "Yesterday"
	case PresetWeek:
		return "Last Week"
	case PresetMonth:
		return "Last Month"
	case PresetAll:
		return "All Time"
	case PresetCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Next cycles to the next preset.
func (p Preset) Next() Preset {
	return (p + 1) % Preset(len(presetNames))
}

// ParsePreset resolves a wire name into a Preset.
func ParsePreset(s string) (Preset, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return PresetYesterday, fmt.Errorf("unknown period %q", s)
}

var (
	// ErrIncompleteRange is returned when a custom window lacks a bound.
	ErrIncompleteRange = errors.New("custom range requires both a start and an end date")
	// ErrInvertedRange is returned when the end date precedes the start date.
	ErrInvertedRange = errors.New("end date must not be before start date")
)

// TimeWindow is the user's draft period selection. It only becomes a request
// once resolved into a Query by an apply action.
type TimeWindow struct {
	Start   *time.Time
	End     *time.Time
	Preset  Preset
	Compare bool
}

// NewTimeWindow returns a window on the given preset with comparison off.
func NewTimeWindow(p Preset) TimeWindow {
	return TimeWindow{Preset: p}
}

// SelectPreset switches the preset. Any preset other than custom discards
// explicit dates.
func (w *TimeWindow) SelectPreset(p Preset) {
	w.Preset = p
	if p != PresetCustom {
		w.Start = nil
		w.End = nil
	}
}

// SetStart sets the explicit start date and moves the window to custom mode.
func (w *TimeWindow) SetStart(t time.Time) {
	d := truncateDay(t)
	w.Start = &d
	w.Preset = PresetCustom
}

// SetEnd sets the explicit end date and moves the window to custom mode.
func (w *TimeWindow) SetEnd(t time.Time) {
	d := truncateDay(t)
	w.End = &d
	w.Preset = PresetCustom
}

// ToggleCompare flips the comparison flag. It does not issue any request.
func (w *TimeWindow) ToggleCompare() {
	w.Compare = !w.Compare
}

// HasRange reports whether both explicit bounds are set.
func (w TimeWindow) HasRange() bool {
	return w.Start != nil && w.End != nil
}

// Validate checks the custom-range invariants.
func (w TimeWindow) Validate() error {
	if w.Preset != PresetCustom {
		return nil
	}
	if !w.HasRange() {
		return ErrIncompleteRange
	}
	if w.End.Before(*w.Start) {
		return ErrInvertedRange
	}
	return nil
}

// Resolve snapshots the window into the query used by the next fetch cycle.
func (w TimeWindow) Resolve() (Query, error) {
	if err := w.Validate(); err != nil {
		return Query{}, err
	}
	q := Query{Compare: w.Compare}
	if w.HasRange() {
		q.StartDate = w.Start.Format(DateLayout)
		q.EndDate = w.End.Format(DateLayout)
	} else if w.Preset != PresetCustom {
		q.Period = w.Preset.String()
	}
	return q, nil
}

// Describe renders the window for the filter bar.
func (w TimeWindow) Describe() string {
	var b strings.Builder
	b.WriteString(w.Preset.Label())
	if w.Preset == PresetCustom {
		b.WriteString(" ")
		b.WriteString(formatBound(w.Start))
		b.WriteString(" → ")
		b.WriteString(formatBound(w.End))
	}
	if w.Compare {
		b.WriteString(" · compare")
	}
	return b.String()
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "____-__-__"
	}
	return t.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a canonical yyyy-MM-dd date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want yyyy-MM-dd)", s)
	}
	return t, nil
}

// Query is a resolved window. Either Period or both dates are set, never
// both; an empty Query (preset all) omits every bound.
type Query struct {
	Period    string
	StartDate string
	EndDate   string
	Compare   bool
}

// HasRange reports whether explicit bounds are present.
func (q Query) HasRange() bool {
	return q.StartDate != "" && q.EndDate != ""
}

// InsightsParams builds the query string for the primary insights request.
func (q Query) InsightsParams() url.Values {
	v := url.Values{}
	switch {
	case q.HasRange():
		v.Set("start_date", q.StartDate)
		v.Set("end_date", q.EndDate)
	case q.Period != "":
		v.Set("period", q.Period)
	}
	if q.Compare {
		v.Set("compare", "true")
	}
	return v
}

// RangeParams builds the date-bound parameters shared by the visualization
// and ML endpoints. Preset windows carry no bounds.
func (q Query) RangeParams() url.Values {
	v := url.Values{}
	if q.HasRange() {
		v.Set("start_date", q.StartDate)
		v.Set("end_date", q.EndDate)
	}
	return v
}

// Key identifies the query for staleness checks and request dedup.
func (q Query) Key() string {
	return q.InsightsParams().Encode()
}

// RangeKey identifies only the date bounds of the query.
func (q Query) RangeKey() string {
	return q.RangeParams().Encode()
}

// String renders the query for the filter bar and logs.
func (q Query) String() string {
	var s string
	switch {
	case q.HasRange():
		s = q.StartDate + " to " + q.EndDate
	case q.Period != "":
		s = q.Period
	default:
		s = "custom"
	}
	if q.Compare {
		s += " (compare)"
	}
	return s
}
