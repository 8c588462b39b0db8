package presenter

import (
	"fmt"
	"strings"

	"github.com/jalikoi/analytics-tui/internal/models"
)

// Remediation lists the steps shown when the backend models are untrained.
var Remediation = []string{
	"Run: python train_ml_models.py",
	"Wait for training to complete",
	"Refresh this panel",
}

// Level is a coarse risk bucket used to pick colors.
type Level int

const (
	// LevelLow is the safe bucket.
	LevelLow Level = iota
	// LevelMedium is the warning bucket.
	LevelMedium
	// LevelHigh is the critical bucket.
	LevelHigh
)

// ProbabilityLevel buckets a churn probability: above 0.7 is high, above 0.4
// is medium.
func ProbabilityLevel(p float64) Level {
	switch {
	case p > 0.7:
		return LevelHigh
	case p > 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// RiskLevel buckets a backend risk label.
func RiskLevel(label string) Level {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "high"):
		return LevelHigh
	case strings.Contains(l, "medium"):
		return LevelMedium
	default:
		return LevelLow
	}
}

// ConfidenceLevel buckets a forecast confidence label; high confidence maps
// to the safe bucket.
func ConfidenceLevel(label string) Level {
	switch strings.ToLower(label) {
	case "high":
		return LevelLow
	case "medium":
		return LevelMedium
	default:
		return LevelHigh
	}
}

// Probability renders a 0..1 probability as a percentage.
func Probability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// ModelsActive renders "active/total" for the model availability check.
func ModelsActive(info *models.ModelInfo) string {
	if info == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d/%d", info.Active(), info.Total())
}

// Accuracy renders an optional model accuracy.
func Accuracy(a *float64) string {
	if a == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *a*100)
}

// PaymentLabel renders the payment gateway status of an anomaly.
func PaymentLabel(a models.Anomaly) string {
	if a.PaymentOK() {
		return "Success"
	}
	return "Failed"
}
