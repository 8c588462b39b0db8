// Package models defines data structures and domain types.
package models

// InsightsResponse is the envelope returned by the insights endpoint.
type InsightsResponse struct {
	Comparison *Comparison       `json:"comparison,omitempty"`
	Data       *InsightsDocument `json:"data"`
}

// InsightsDocument is the primary analytics payload for a window. It is
// replaced wholesale on every successful fetch.
type InsightsDocument struct {
	Period             Period            `json:"period"`
	Segmentation       Segmentation      `json:"segmentation"`
	ChurnAnalysis      ChurnAnalysis     `json:"churn_analysis"`
	TopCustomers       []TopCustomer     `json:"top_customers"`
	StationPerformance []StationSummary  `json:"station_performance"`
	Overview           Overview          `json:"overview"`
	CLVProjection      CLVProjection     `json:"clv_projection"`
	Customers          CustomerBreakdown `json:"customers"`
}

// Period describes the date bounds a document was computed over.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days,omitempty"`
}

// Overview holds the headline business metrics.
type Overview struct {
	Currency            string  `json:"currency"`
	TotalRevenue        float64 `json:"total_revenue"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	TotalLitersSold     float64 `json:"total_liters_sold"`
	SuccessRate         float64 `json:"success_rate"`
	TotalTransactions   int64   `json:"total_transactions"`
}

// CustomerBreakdown holds customer counts.
type CustomerBreakdown struct {
	TotalCustomers    int64 `json:"total_customers"`
	ActiveCustomers30 int64 `json:"active_customers_30d"`
}

// Segmentation maps segment names to customer counts and revenue. The two
// maps are joined by name and may not share the same keys.
type Segmentation struct {
	SegmentDistribution map[string]int64   `json:"segment_distribution"`
	SegmentRevenue      map[string]float64 `json:"segment_revenue"`
}

// Churn bucket names as reported by the backend.
const (
	RiskHigh   = "High Risk"
	RiskMedium = "Medium Risk"
	RiskLow    = "Low Risk"
)

// ChurnBuckets lists the buckets that always render, in display order.
var ChurnBuckets = []string{RiskHigh, RiskMedium, RiskLow}

// ChurnAnalysis summarizes churn risk over the window.
type ChurnAnalysis struct {
	ChurnDistribution map[string]int64 `json:"churn_distribution"`
	RevenueAtRisk     float64          `json:"revenue_at_risk"`
	ChurnRate         float64          `json:"churn_rate"`
}

// CLVProjection holds customer lifetime value projections.
type CLVProjection struct {
	Total6MProjection float64 `json:"total_6m_projection"`
	AvgCustomerCLV    float64 `json:"avg_customer_clv"`
}

// TopCustomer is a ranked customer row.
type TopCustomer struct {
	CustomerID   ID      `json:"customer_id"`
	Segment      string  `json:"segment"`
	TotalSpent   float64 `json:"total_spent"`
	Transactions int64   `json:"transactions"`
}

// StationSummary is a per-station performance row.
type StationSummary struct {
	StationID    ID      `json:"station_id"`
	Revenue      float64 `json:"revenue"`
	Liters       float64 `json:"liters"`
	Transactions int64   `json:"transactions"`
}

// Comparison is the optional previous-period sub-document.
type Comparison struct {
	PreviousPeriod Period  `json:"previous_period"`
	Changes        Changes `json:"changes"`
}

// Changes holds signed percentage deltas. A nil value means there was no
// baseline data, which is distinct from zero.
type Changes struct {
	RevenueChange        *float64 `json:"revenue_change"`
	TransactionsChange   *float64 `json:"transactions_change"`
	CustomersChange      *float64 `json:"customers_change"`
	AvgTransactionChange *float64 `json:"avg_transaction_change"`
	SuccessRateChange    *float64 `json:"success_rate_change"`
}

// Series is one named chart as parallel label and value arrays.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// VisualizationDocument maps chart names to their series.
type VisualizationDocument struct {
	Charts map[string]Series `json:"charts"`
}

// Known chart names.
const (
	ChartRevenueTopCustomers  = "revenue_top_customers"
	ChartCustomerSegmentation = "customer_segmentation"
	ChartSegmentRevenue       = "segment_revenue"
	ChartChurnDistribution    = "churn_distribution"
	ChartRevenueAtRisk        = "revenue_at_risk"
)
