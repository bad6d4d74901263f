// Package report renders backend payloads as markdown answers. Every
// formatter must produce an explicit "data unavailable" message when the
// fetch failed or came back empty; fabricated numbers are never shown.
package report

import (
	"fmt"
	"strings"
	"time"

	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
)

// Formatter bundles the render functions with a clock so tests can freeze
// the report timestamps.
type Formatter struct {
	now func() time.Time
}

func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// VisitorStatus renders the current visitor count with a staffing hint.
func (f *Formatter) VisitorStatus(result backendx.ObjectResult) string {
	if result.Unavailable() {
		return "📭 Current visitor data is unavailable."
	}
	count, ok := numberField(result.Data, "current_visitors")
	if !ok {
		return "📭 Current visitor data is unavailable."
	}

	var emoji, context string
	switch {
	case count == 0:
		emoji, context = "🕳️", "The store is currently empty. Perfect time for restocking! 🛒"
	case count < 10:
		emoji, context = "😴", "It's very quiet. Consider running a promotion? 📢"
	case count < 30:
		emoji, context = "😊", "Moderate activity. Normal operations recommended. 👍"
	case count < 50:
		emoji, context = "🔥", "Busy! Ensure staff are adequately distributed. 👥"
	default:
		emoji, context = "🚀", "Very busy! Consider opening additional cashiers. ⚡"
	}

	return fmt.Sprintf(`## %s Current Store Status

**Visitors in store**: %.0f people

**Analysis**: %s

*Last updated: %s*
`, emoji, count, context, timestampOr(result.Data, "timestamp", f.now))
}

// CashierStatus renders the checkout queue with a recommended action.
func (f *Formatter) CashierStatus(result backendx.ObjectResult) string {
	if result.Unavailable() {
		return "💳 Cashier status data is currently unavailable."
	}
	queueLength, ok := numberField(result.Data, "queue_length")
	if !ok {
		return "💳 Cashier status data is currently unavailable."
	}

	status := titleCase(stringFieldOr(result.Data, "status", "unknown"))
	waitTime := numberFieldOr(result.Data, "wait_time_minutes", queueLength*2)

	var emoji, recommendation, action string
	switch {
	case queueLength == 0:
		emoji = "✅"
		recommendation = "✅ Perfect time for customers to checkout!"
		action = "No action needed."
	case queueLength <= 2:
		emoji = "👍"
		recommendation = "✅ Good checkout conditions."
		action = "Monitor but no immediate action required."
	case queueLength <= 5:
		emoji = "⚠️"
		recommendation = "⚠️ Moderate wait expected."
		action = "Consider preparing an additional cashier."
	case queueLength <= 8:
		emoji = "🚨"
		recommendation = "🚨 Long queue forming."
		action = "Open additional cashier immediately."
	default:
		emoji = "🔥"
		recommendation = "🔥 Critical queue length!"
		action = "Open all available cashiers and inform management."
	}

	return fmt.Sprintf(`## %s Cashier Status

**Queue Length**: %.0f people
**Status**: %s
**Estimated Wait**: %.0f minutes

**Recommendation**: %s
**Action Required**: %s

*Last updated: %s*
`, emoji, queueLength, status, waitTime, recommendation, action, timestampOr(result.Data, "timestamp", f.now))
}

// Heatmap groups monitored areas by density level.
func (f *Formatter) Heatmap(result backendx.ListResult) string {
	if result.Unavailable() || len(result.Data) == 0 {
		return "🌡️ No heatmap data available at the moment."
	}

	var high, medium, low []string
	for _, area := range result.Data {
		section := stringFieldOr(area, "section", "Unknown")
		switch stringFieldOr(area, "density_level", "low") {
		case "high":
			high = append(high, section)
		case "medium":
			medium = append(medium, section)
		default:
			low = append(low, section)
		}
	}

	var b strings.Builder
	b.WriteString("## 🗺️ Store Heatmap Analysis\n\n")

	if len(high) > 0 {
		b.WriteString("### 🔥 High Traffic Areas\nConsider adding staff or optimizing layout:\n")
		for _, section := range high {
			fmt.Fprintf(&b, "- **%s**\n", section)
		}
		b.WriteString("\n")
	}
	if len(medium) > 0 {
		b.WriteString("### ⚠️ Medium Traffic Areas\nNormal operations, monitor for changes:\n")
		for _, section := range medium {
			fmt.Fprintf(&b, "- **%s**\n", section)
		}
		b.WriteString("\n")
	}
	if len(low) > 0 {
		b.WriteString("### ✅ Low Traffic Areas\nOpportunities for improvement:\n")
		for _, section := range low {
			fmt.Fprintf(&b, "- **%s** (consider promotions or relocation)\n", section)
		}
		b.WriteString("\n")
	}

	total := len(high) + len(medium) + len(low)
	b.WriteString("### 📊 Summary\n")
	fmt.Fprintf(&b, "- **Total monitored areas**: %d\n", total)
	fmt.Fprintf(&b, "- **High traffic**: %d areas\n", len(high))
	fmt.Fprintf(&b, "- **Medium traffic**: %d areas\n", len(medium))
	fmt.Fprintf(&b, "- **Low traffic**: %d areas\n", len(low))

	return b.String()
}
