// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jalikoi/analytics-tui/internal/ui/styles"
)

// ChartPrimaryColor is the bar color of single-series charts.
var ChartPrimaryColor = lipgloss.Color("#7D56F4")

const noChartData = "No data available"

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(noChartData)
	}

	// Ensure minimum dimensions
	width = max(width, 20)
	height = max(height, 3)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// RenderBarChart creates a horizontal bar chart. Labels and values are
// paired by index; format renders the value shown after each bar.
func RenderBarChart(labels []string, values []float64, width int, format func(float64) string) string {
	n := min(len(labels), len(values))
	if n == 0 {
		return styles.HelpStyle.Render(noChartData)
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	maxVal := 0.0
	maxLabelLen := 0
	for i := 0; i < n; i++ {
		maxVal = max(maxVal, values[i])
		maxLabelLen = max(maxLabelLen, lipgloss.Width(labels[i]))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxValueLen := 0
	formatted := make([]string, n)
	for i := 0; i < n; i++ {
		formatted[i] = format(values[i])
		maxValueLen = max(maxValueLen, len(formatted[i]))
	}

	// Leave room for label and value
	barWidth := max(width-maxLabelLen-maxValueLen-4, 10)
	barStyle := lipgloss.NewStyle().Foreground(ChartPrimaryColor)

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		barLen := max(int((values[i]/maxVal)*float64(barWidth)), 0)
		label := strings.Repeat(" ", maxLabelLen-lipgloss.Width(labels[i])) + labels[i]
		lines = append(lines, fmt.Sprintf("%s │%s %s", label, barStyle.Render(strings.Repeat("█", barLen)), formatted[i]))
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart scaled between
// the smallest and largest value.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	// Sample values to fit width
	step := max(float64(len(values))/float64(width), 1)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		v := values[int(float64(i)*step)]
		idx := int(((v - minVal) / span) * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[idx])
	}

	return result.String()
}
