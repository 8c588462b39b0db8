// Package models defines data structures and domain types.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an identifier the backend may encode as either a JSON string or a
// JSON number.
type ID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// ModelInfo reports which backend models are trained.
type ModelInfo struct {
	Models map[string]bool `json:"models"`
}

// Active returns the number of trained models.
func (m ModelInfo) Active() int {
	n := 0
	for _, ok := range m.Models {
		if ok {
			n++
		}
	}
	return n
}

// Total returns the number of known models.
func (m ModelInfo) Total() int {
	return len(m.Models)
}

// ChurnCustomer is one at-risk customer, ranked by the backend.
type ChurnCustomer struct {
	CustomerID       ID      `json:"customer_id"`
	RiskLevel        string  `json:"risk_level"`
	ChurnProbability float64 `json:"churn_probability"`
	TotalSpent       float64 `json:"total_spent"`
	Transactions     int64   `json:"transactions"`
	RecencyDays      int64   `json:"recency_days"`
}

// ChurnPredictions is the churn endpoint payload.
type ChurnPredictions struct {
	ModelType       string          `json:"model_type"`
	CustomersAtRisk []ChurnCustomer `json:"customers_at_risk"`
	ModelAccuracy   *float64        `json:"model_accuracy,omitempty"`
	HighRiskCount   int64           `json:"high_risk_count"`
}

// CustomerForecast is one customer's forecasted revenue.
type CustomerForecast struct {
	CustomerID           ID      `json:"customer_id"`
	Confidence           string  `json:"confidence"`
	PredictedRevenue     float64 `json:"predicted_revenue"`
	HistoricalRevenue    float64 `json:"historical_revenue"`
	ForecastPeriodMonths int     `json:"forecast_period_months"`
	Transactions         int64   `json:"transactions"`
}

// RevenueForecast is the revenue forecast endpoint payload.
type RevenueForecast struct {
	ModelType              string             `json:"model_type"`
	TopCustomersForecast   []CustomerForecast `json:"top_customers_forecast"`
	TotalForecastedRevenue float64            `json:"total_forecasted_revenue"`
	ForecastPeriodMonths   int                `json:"forecast_period_months"`
}

// Predictions combines the documents owned by the predictions panel.
type Predictions struct {
	ModelInfo *ModelInfo
	Churn     ChurnPredictions
	Revenue   RevenueForecast
}

// Segment is one upstream customer cluster.
type Segment struct {
	SegmentName           string  `json:"segment_name"`
	CustomerCount         int64   `json:"customer_count"`
	TotalRevenue          float64 `json:"total_revenue"`
	AvgRevenuePerCustomer float64 `json:"avg_revenue_per_customer"`
	AvgTransactions       float64 `json:"avg_transactions"`
	AvgFrequency          float64 `json:"avg_frequency"`
	AvgRecencyDays        float64 `json:"avg_recency_days"`
}

// SegmentsDocument is the segments endpoint payload.
type SegmentsDocument struct {
	ModelType              string    `json:"model_type"`
	Segments               []Segment `json:"segments"`
	NClusters              int       `json:"n_clusters"`
	TotalCustomersAnalyzed int64     `json:"total_customers_analyzed"`
}

// CustomerSummary is one member of a segment roster.
type CustomerSummary struct {
	MotorcyclistID ID     `json:"motorcyclist_id"`
	PayerPhone     string `json:"payer_phone"`
	CreatedAt      string `json:"created_at"`
	// LegacyPhoneField is set when the phone number arrived under the
	// deprecated motari_phone key.
	LegacyPhoneField bool `json:"-"`
}

// UnmarshalJSON reads the canonical payer_phone key and falls back to the
// legacy motari_phone key, flagging the fallback.
func (c *CustomerSummary) UnmarshalJSON(b []byte) error {
	var raw struct {
		MotorcyclistID ID      `json:"motorcyclist_id"`
		PayerPhone     *string `json:"payer_phone"`
		MotariPhone    *string `json:"motari_phone"`
		CreatedAt      string  `json:"created_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = CustomerSummary{MotorcyclistID: raw.MotorcyclistID, CreatedAt: raw.CreatedAt}
	switch {
	case raw.PayerPhone != nil:
		c.PayerPhone = *raw.PayerPhone
	case raw.MotariPhone != nil:
		c.PayerPhone = *raw.MotariPhone
		c.LegacyPhoneField = true
	}
	return nil
}

// SegmentRoster is the customer list of one segment.
type SegmentRoster struct {
	SegmentName string
	Customers   []CustomerSummary
}

// LegacyPhoneCount returns how many customers used the deprecated phone key.
func (r SegmentRoster) LegacyPhoneCount() int {
	n := 0
	for _, c := range r.Customers {
		if c.LegacyPhoneField {
			n++
		}
	}
	return n
}

// Anomaly risk levels.
const (
	AnomalyHigh   = "High Risk"
	AnomalyMedium = "Medium Risk"
	AnomalyNormal = "Normal"
)

// DefaultAnomalyModel is reported when the backend omits model_type.
const DefaultAnomalyModel = "IsolationForest"

// Anomaly is one flagged transaction.
type Anomaly struct {
	TransactionID ID      `json:"transaction_id"`
	CustomerID    ID      `json:"customer_id"`
	StationID     ID      `json:"station_id"`
	Timestamp     string  `json:"timestamp"`
	RiskLevel     string  `json:"risk_level"`
	Amount        float64 `json:"amount"`
	Liters        float64 `json:"liters"`
	AnomalyScore  float64 `json:"anomaly_score"`
	PaymentStatus int     `json:"payment_status"`
}

// PaymentOK reports whether the payment gateway accepted the transaction.
func (a Anomaly) PaymentOK() bool {
	return a.PaymentStatus == 200
}

// AnomaliesDocument is the anomalies endpoint payload.
type AnomaliesDocument struct {
	Period                    *Period   `json:"period,omitempty"`
	ModelType                 string    `json:"model_type"`
	Anomalies                 []Anomaly `json:"anomalies"`
	TotalAnomaliesDetected    int64     `json:"total_anomalies_detected"`
	TotalTransactionsAnalyzed int64     `json:"total_transactions_analyzed"`
	AnomalyRate               float64   `json:"anomaly_rate"`
}

// HighRiskCount counts anomalies in the high-risk bucket.
func (d AnomaliesDocument) HighRiskCount() int {
	n := 0
	for _, a := range d.Anomalies {
		if strings.EqualFold(a.RiskLevel, AnomalyHigh) {
			n++
		}
	}
	return n
}

// Model returns the model name, defaulting when absent.
func (d AnomaliesDocument) Model() string {
	if d.ModelType == "" {
		return DefaultAnomalyModel
	}
	return d.ModelType
}
