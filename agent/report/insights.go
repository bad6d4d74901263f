package report

import (
	"fmt"
	"strings"

	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
)

// SectionTraffic ranks sections by visitor count and appends a staffing
// summary. The backend returns sections already sorted busiest-first.
func (f *Formatter) SectionTraffic(result backendx.ListResult) string {
	if result.Unavailable() || len(result.Data) == 0 {
		return "📭 No section traffic data available at the moment."
	}

	var b strings.Builder
	b.WriteString("## 📊 Section Traffic Analysis\n\n")

	var totalVisitors float64
	for i, section := range result.Data {
		name := stringFieldOr(section, "section", "Unknown")
		visitors := numberFieldOr(section, "total_visitors", 0)
		records := numberFieldOr(section, "records_count", 0)
		totalVisitors += visitors

		emoji := "📈"
		switch {
		case i == 0:
			emoji = "🔥"
		case i < 3:
			emoji = "⚠️"
		}
		fmt.Fprintf(&b, "%s **%s**: %.0f visitors (%.0f records)\n", emoji, name, visitors, records)
	}

	busiest := result.Data[0]
	busiestName := stringFieldOr(busiest, "section", "Unknown")
	busiestCount := numberFieldOr(busiest, "total_visitors", 0)

	b.WriteString("\n### 🏆 Summary\n")
	fmt.Fprintf(&b, "- **Total tracked visitors**: %.0f\n", totalVisitors)
	fmt.Fprintf(&b, "- **Busiest section**: %s (%s of traffic)\n", busiestName, percent(busiestCount, totalVisitors))
	fmt.Fprintf(&b, "- **Recommendation**: Consider adding staff to %s during peak hours.", busiestName)

	return b.String()
}

// DailyReport renders the daily analytics summary with a performance rating.
func (f *Formatter) DailyReport(result backendx.ObjectResult) string {
	if result.Unavailable() || len(result.Data) == 0 {
		return "📭 Daily analytics are not available yet."
	}

	totalVisitors := numberFieldOr(result.Data, "total_visitors_today", 0)
	busiestSection := stringFieldOr(result.Data, "busiest_section", "N/A")
	avgQueue := numberFieldOr(result.Data, "avg_queue_length", 0)
	peakHour := stringFieldOr(result.Data, "peak_hour", "N/A")

	var performance, suggestion string
	switch {
	case totalVisitors > 100:
		performance = "Excellent 🚀"
		suggestion = "Consider extending hours to capture more demand."
	case totalVisitors > 50:
		performance = "Good 👍"
		suggestion = "Normal operations recommended."
	default:
		performance = "Quiet 📉"
		suggestion = "Consider promotions or marketing to increase footfall."
	}

	return fmt.Sprintf(`## 📈 Daily Performance Report

### 🎯 Key Metrics
- **Total Visitors Today**: %.0f people
- **Performance Rating**: %s
- **Busiest Section**: %s
- **Average Queue Length**: %.1f people
- **Peak Hour**: %s

### 💡 Insights & Recommendations
%s

### 📋 Action Items
1. Review staffing for %s
2. Monitor cashier queues during %s
3. Consider restocking low-traffic sections

*Report generated: %s*
`, totalVisitors, performance, busiestSection, avgQueue, peakHour, suggestion,
		busiestSection, peakHour, timestampOr(result.Data, "timestamp", f.now))
}

// TrafficForecast renders the visitor and queue predictions.
func (f *Formatter) TrafficForecast(result backendx.ObjectResult) string {
	if result.Unavailable() {
		return "📭 Traffic forecast is not available at the moment."
	}
	visitorsPred := objectFieldOr(result.Data, "visitors_forecast")
	if visitorsPred == nil {
		return "📭 Traffic forecast is not available at the moment."
	}
	queuePred := objectFieldOr(result.Data, "queue_forecast")
	recommendation := stringFieldOr(result.Data, "recommendation", "No specific recommendation")

	var b strings.Builder
	b.WriteString("## 🔮 Traffic Forecast\n\n")

	predValue := numberFieldOr(visitorsPred, "predicted_value", 0)
	confidence := numberFieldOr(visitorsPred, "confidence_level", 0) * 100
	horizon := stringFieldOr(visitorsPred, "forecast_horizon", "N/A")

	fmt.Fprintf(&b, "### 👥 Visitor Prediction (%s)\n", horizon)
	fmt.Fprintf(&b, "- **Expected visitors**: %.0f\n", predValue)
	fmt.Fprintf(&b, "- **Confidence**: %.1f%%\n\n", confidence)

	if queuePred != nil {
		queueValue := numberFieldOr(queuePred, "predicted_value", 0)
		b.WriteString("### ⏳ Queue Prediction\n")
		fmt.Fprintf(&b, "- **Expected queue length**: %.1f people\n", queueValue)
		fmt.Fprintf(&b, "- **Estimated wait**: %.0f minutes\n\n", queueValue*2)
	}

	fmt.Fprintf(&b, "### 📋 Recommendation\n%s\n\n", recommendation)
	b.WriteString("*Note: Predictions are based on historical patterns*")

	return b.String()
}

// SectionComparison renders a side-by-side comparison of two sections from
// the section-traffic listing.
func (f *Formatter) SectionComparison(first, second string, result backendx.ListResult) string {
	if result.Unavailable() || len(result.Data) == 0 {
		return "📭 No section traffic data available at the moment."
	}

	firstData := findSection(result.Data, first)
	secondData := findSection(result.Data, second)
	if firstData == nil || secondData == nil {
		var missing []string
		if firstData == nil {
			missing = append(missing, first)
		}
		if secondData == nil {
			missing = append(missing, second)
		}
		return fmt.Sprintf("❌ Could not find data for: %s", strings.Join(missing, ", "))
	}

	firstCount := numberFieldOr(firstData, "total_visitors", 0)
	secondCount := numberFieldOr(secondData, "total_visitors", 0)
	total := firstCount + secondCount
	if total == 0 {
		return "Both sections have zero visitors."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## 📊 Section Comparison: %s vs %s\n\n", first, second)
	fmt.Fprintf(&b, "| Metric | %s | %s |\n", first, second)
	b.WriteString("|--------|------------|------------|\n")
	fmt.Fprintf(&b, "| **Visitors** | %.0f | %.0f |\n", firstCount, secondCount)
	fmt.Fprintf(&b, "| **Percentage** | %s | %s |\n", percent(firstCount, total), percent(secondCount, total))
	fmt.Fprintf(&b, "| **Records** | %.0f | %.0f |\n",
		numberFieldOr(firstData, "records_count", 0), numberFieldOr(secondData, "records_count", 0))

	switch {
	case firstCount > secondCount:
		b.WriteString("\n### 📈 Analysis\n")
		fmt.Fprintf(&b, "**%s** has %.0f more visitors than **%s**.\n", first, firstCount-secondCount, second)
		b.WriteString("Consider analyzing product placement or promotions in the lower-traffic section.")
	case secondCount > firstCount:
		b.WriteString("\n### 📈 Analysis\n")
		fmt.Fprintf(&b, "**%s** has %.0f more visitors than **%s**.\n", second, secondCount-firstCount, first)
		b.WriteString("The higher traffic in this section suggests better product visibility or placement.")
	default:
		b.WriteString("\n### 📊 Analysis\nBoth sections have equal visitor traffic.")
	}

	return b.String()
}

func findSection(sections backendx.List, name string) backendx.Object {
	for _, section := range sections {
		if strings.EqualFold(stringFieldOr(section, "section", ""), name) {
			return section
		}
	}
	return nil
}
