// Package presenter turns analytics documents into display-ready values.
// Every function is pure: no I/O and no local arithmetic on upstream deltas.
package presenter

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NoData is shown for a comparison change with no baseline.
const NoData = "No data"

// Trend is the direction indicator for a percentage change.
type Trend int

const (
	// TrendFlat covers zero and missing changes.
	TrendFlat Trend = iota
	// TrendUp covers strictly positive changes.
	TrendUp
	// TrendDown covers strictly negative changes.
	TrendDown
)

// Symbol returns the arrow used for the trend.
func (t Trend) Symbol() string {
	switch t {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	default:
		return "–"
	}
}

// Classify maps a signed percentage to a trend. Zero and nil are both flat;
// the payload does not distinguish "no change" from "no baseline" beyond nil.
func Classify(v *float64) Trend {
	switch {
	case v == nil || math.IsNaN(*v):
		return TrendFlat
	case *v > 0:
		return TrendUp
	case *v < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// FormatChange renders the magnitude of a change to two decimals, with an
// explicit sign only for positive values.
func FormatChange(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return NoData
	}
	s := fmt.Sprintf("%.2f%%", math.Abs(*v))
	if *v > 0 {
		return "+" + s
	}
	return s
}

// Number formats a figure with thousands separators and at most two
// decimals.
func Number(v float64) string {
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// Count formats an integer with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Money formats an amount in the document's own currency. No conversion is
// performed.
func Money(v float64, currency string) string {
	if currency == "" {
		return Number(v)
	}
	return Number(v) + " " + currency
}

// Percent formats an already-percentage value such as a success rate.
func Percent(v float64) string {
	return Number(v) + "%"
}
