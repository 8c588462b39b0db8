package presenter

import (
	"fmt"
	"sort"

	"github.com/jalikoi/analytics-tui/internal/models"
)

// Row is one rendered table line.
type Row []string

// Table is a titled table with headers.
type Table struct {
	Title   string
	Headers []string
	Rows    []Row
}

// Customers shapes the top-customer and station tables in server order.
func Customers(doc *models.InsightsDocument) (customers, stations Table) {
	cur := ""
	if doc != nil {
		cur = doc.Overview.Currency
	}
	customers = Table{
		Title:   "Top Customers",
		Headers: []string{"Rank", "Customer ID", fmt.Sprintf("Total Spent (%s)", cur), "Transactions", "Segment"},
	}
	stations = Table{
		Title:   "Top Stations by Revenue",
		Headers: []string{"Rank", "Station ID", "Transactions", fmt.Sprintf("Revenue (%s)", cur), "Liters Sold"},
	}
	if doc == nil {
		return customers, stations
	}

	for i, c := range doc.TopCustomers {
		customers.Rows = append(customers.Rows, Row{
			fmt.Sprintf("#%d", i+1),
			c.CustomerID.String(),
			Number(c.TotalSpent),
			Count(c.Transactions),
			c.Segment,
		})
	}
	for i, s := range doc.StationPerformance {
		stations.Rows = append(stations.Rows, Row{
			fmt.Sprintf("#%d", i+1),
			s.StationID.String(),
			Count(s.Transactions),
			Number(s.Revenue),
			Number(s.Liters) + " L",
		})
	}
	return customers, stations
}

// Point is one labelled chart value.
type Point struct {
	Label string
	Value float64
}

// Chart is a named series ready for rendering.
type Chart struct {
	Name   string
	Title  string
	Points []Point
}

var chartOrder = []struct {
	name  string
	title string
}{
	{models.ChartRevenueTopCustomers, "Revenue by Top Customers"},
	{models.ChartCustomerSegmentation, "Customer Segmentation"},
	{models.ChartSegmentRevenue, "Revenue by Segment"},
	{models.ChartChurnDistribution, "Churn Risk Distribution"},
	{models.ChartRevenueAtRisk, "Revenue at Risk"},
}

// Charts converts the visualization document into point series. Known charts
// come first in a fixed order, then any others by name; absent charts are
// skipped. Unequal label and value arrays are cut to the shorter length.
func Charts(doc *models.VisualizationDocument) []Chart {
	if doc == nil {
		return nil
	}
	known := make(map[string]bool, len(chartOrder))
	var out []Chart
	for _, c := range chartOrder {
		known[c.name] = true
		s, ok := doc.Charts[c.name]
		if !ok {
			continue
		}
		out = append(out, Chart{Name: c.name, Title: c.title, Points: Points(s)})
	}

	var extra []string
	for name := range doc.Charts {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, Chart{Name: name, Title: name, Points: Points(doc.Charts[name])})
	}
	return out
}

// Points zips a series' parallel arrays.
func Points(s models.Series) []Point {
	n := min(len(s.Labels), len(s.Values))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{Label: s.Labels[i], Value: s.Values[i]}
	}
	return pts
}

// Segments shapes the ML segments table in server order.
func Segments(doc *models.SegmentsDocument) Table {
	t := Table{
		Title:   "Customer Segments",
		Headers: []string{"Segment", "Customers", "Total Revenue", "Avg Revenue", "Avg Txns", "Avg Frequency", "Avg Recency"},
	}
	if doc == nil {
		return t
	}
	for _, s := range doc.Segments {
		t.Rows = append(t.Rows, Row{
			s.SegmentName,
			Count(s.CustomerCount),
			Number(s.TotalRevenue),
			Number(s.AvgRevenuePerCustomer),
			fmt.Sprintf("%.1f", s.AvgTransactions),
			fmt.Sprintf("%.2f", s.AvgFrequency),
			fmt.Sprintf("%.0fd", s.AvgRecencyDays),
		})
	}
	return t
}

// Roster shapes a segment's customer list.
func Roster(r *models.SegmentRoster) Table {
	t := Table{Headers: []string{"Motorcyclist ID", "Phone", "Joined"}}
	if r == nil {
		return t
	}
	t.Title = r.SegmentName
	for _, c := range r.Customers {
		phone := c.PayerPhone
		if phone == "" {
			phone = "-"
		}
		t.Rows = append(t.Rows, Row{c.MotorcyclistID.String(), phone, c.CreatedAt})
	}
	return t
}

// Anomalies shapes the flagged transactions in server order. The risk and
// payment columns are left plain for the caller to colour.
func Anomalies(doc *models.AnomaliesDocument) Table {
	t := Table{
		Title:   "Flagged Transactions",
		Headers: []string{"Transaction", "Customer", "Station", "Time", "Amount", "Liters", "Score", "Risk", "Payment"},
	}
	if doc == nil {
		return t
	}
	for _, a := range doc.Anomalies {
		t.Rows = append(t.Rows, Row{
			a.TransactionID.String(),
			a.CustomerID.String(),
			a.StationID.String(),
			a.Timestamp,
			Number(a.Amount),
			fmt.Sprintf("%.2f", a.Liters),
			fmt.Sprintf("%.4f", a.AnomalyScore),
			a.RiskLevel,
			PaymentLabel(a),
		})
	}
	return t
}
