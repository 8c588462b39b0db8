package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/services/presenter"
	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// LevelStyle returns the color for a risk bucket.
func LevelStyle(l presenter.Level) lipgloss.Style {
	switch l {
	case presenter.LevelHigh:
		return styles.RiskHighStyle
	case presenter.LevelMedium:
		return styles.RiskMediumStyle
	default:
		return styles.RiskLowStyle
	}
}

// TrendStyle returns the color for a change direction.
func TrendStyle(t presenter.Trend) lipgloss.Style {
	switch t {
	case presenter.TrendUp:
		return styles.TrendUpStyle
	case presenter.TrendDown:
		return styles.TrendDownStyle
	default:
		return styles.TrendFlatStyle
	}
}

// RenderTrend renders an arrow and text in the trend's color.
func RenderTrend(t presenter.Trend, text string) string {
	return TrendStyle(t).Render(t.Symbol() + " " + text)
}

// RenderProbabilityBar renders a 0..1 probability as a bar that shifts from
// green to red as the probability grows.
func RenderProbabilityBar(p float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := min(max(int(float64(width)*p), 0), width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#51cf66", "#ff6b6b", t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

// ProbabilityCell renders a probability bar followed by its percentage in
// the bucket color.
func ProbabilityCell(p float64, width int) string {
	pct := LevelStyle(presenter.ProbabilityLevel(p)).
		Width(6).
		Align(lipgloss.Right).
		Render(presenter.Probability(p))
	return fmt.Sprintf("%s %s", RenderProbabilityBar(p, width), pct)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
