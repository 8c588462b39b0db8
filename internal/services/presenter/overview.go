package presenter

import (
	"fmt"
	"sort"

	"github.com/jalikoi/analytics-tui/internal/models"
)

// Card is one headline metric.
type Card struct {
	Change   *float64
	Title    string
	Value    string
	Subtitle string
	Trend    Trend
}

// ChangeText renders the card's delta, or "" when the card has none.
func (c Card) ChangeText() string {
	if c.Change == nil {
		return ""
	}
	return FormatChange(c.Change) + " vs previous period"
}

// ChangeRow is one comparison line.
type ChangeRow struct {
	Label string
	Text  string
	Trend Trend
}

// ComparisonView is the period-over-period block.
type ComparisonView struct {
	PreviousPeriod string
	Rows           []ChangeRow
}

// SegmentRow joins a segment's customer count with its revenue.
type SegmentRow struct {
	Name    string
	Revenue string
	Count   int64
}

// ChurnRow is one churn bucket.
type ChurnRow struct {
	Bucket string
	Count  int64
}

// Overview is the display model of the overview tab.
type Overview struct {
	Comparison    *ComparisonView
	Currency      string
	PeriodBanner  string
	RevenueAtRisk string
	ChurnRate     string
	CLVTotal      string
	CLVAverage    string
	Cards         []Card
	Segments      []SegmentRow
	Churn         []ChurnRow
}

// Present builds the overview display model. cmp may be nil when comparison
// was not requested or the backend omitted it.
func Present(doc *models.InsightsDocument, cmp *models.Comparison) Overview {
	if doc == nil {
		return Overview{}
	}
	cur := doc.Overview.Currency
	var changes models.Changes
	if cmp != nil {
		changes = cmp.Changes
	}

	ov := Overview{
		Currency:      cur,
		PeriodBanner:  PeriodBanner(doc.Period),
		RevenueAtRisk: Money(doc.ChurnAnalysis.RevenueAtRisk, cur),
		ChurnRate:     Percent(doc.ChurnAnalysis.ChurnRate),
		CLVTotal:      Money(doc.CLVProjection.Total6MProjection, cur),
		CLVAverage:    Money(doc.CLVProjection.AvgCustomerCLV, cur),
		Segments:      JoinSegments(doc.Segmentation, cur),
		Churn:         ChurnBuckets(doc.ChurnAnalysis),
	}

	ov.Cards = []Card{
		newCard("Total Revenue", Money(doc.Overview.TotalRevenue, cur), "", changes.RevenueChange),
		newCard("Transactions", Count(doc.Overview.TotalTransactions),
			fmt.Sprintf("%s success rate", Percent(doc.Overview.SuccessRate)), changes.TransactionsChange),
		newCard("Total Customers", Count(doc.Customers.TotalCustomers),
			fmt.Sprintf("%s active (30d)", Count(doc.Customers.ActiveCustomers30)), changes.CustomersChange),
		newCard("Avg Transaction", Money(doc.Overview.AvgTransactionValue, cur), "", changes.AvgTransactionChange),
		newCard("Total Liters", Number(doc.Overview.TotalLitersSold)+" L", "Fuel dispensed", nil),
	}

	if cmp != nil {
		ov.Comparison = presentComparison(cmp)
	}
	return ov
}

func newCard(title, value, subtitle string, change *float64) Card {
	return Card{Title: title, Value: value, Subtitle: subtitle, Change: change, Trend: Classify(change)}
}

func presentComparison(cmp *models.Comparison) *ComparisonView {
	c := cmp.Changes
	rows := []struct {
		label string
		value *float64
	}{
		{"Revenue", c.RevenueChange},
		{"Transactions", c.TransactionsChange},
		{"Customers", c.CustomersChange},
		{"Avg Transaction", c.AvgTransactionChange},
		{"Success Rate", c.SuccessRateChange},
	}

	view := &ComparisonView{}
	if p := cmp.PreviousPeriod; p.StartDate != "" || p.EndDate != "" {
		view.PreviousPeriod = fmt.Sprintf("vs %s to %s", p.StartDate, p.EndDate)
	}
	for _, r := range rows {
		view.Rows = append(view.Rows, ChangeRow{Label: r.label, Text: FormatChange(r.value), Trend: Classify(r.value)})
	}
	return view
}

// PeriodBanner describes the document's date bounds, or "" when absent.
func PeriodBanner(p models.Period) string {
	if p.StartDate == "" && p.EndDate == "" {
		return ""
	}
	s := fmt.Sprintf("Showing data from %s to %s", p.StartDate, p.EndDate)
	if p.TotalDays > 0 {
		s += fmt.Sprintf(" (%d days)", p.TotalDays)
	}
	return s
}

// JoinSegments joins the distribution with revenue by segment name. Segments
// missing from revenue show zero revenue. Rows are ordered by name.
func JoinSegments(s models.Segmentation, currency string) []SegmentRow {
	names := make([]string, 0, len(s.SegmentDistribution))
	for name := range s.SegmentDistribution {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]SegmentRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, SegmentRow{
			Name:    name,
			Count:   s.SegmentDistribution[name],
			Revenue: Money(s.SegmentRevenue[name], currency),
		})
	}
	return rows
}

// ChurnBuckets returns the three fixed buckets, defaulting absent counts to
// zero.
func ChurnBuckets(c models.ChurnAnalysis) []ChurnRow {
	rows := make([]ChurnRow, 0, len(models.ChurnBuckets))
	for _, b := range models.ChurnBuckets {
		rows = append(rows, ChurnRow{Bucket: b, Count: c.ChurnDistribution[b]})
	}
	return rows
}
