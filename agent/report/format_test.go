package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
)

func frozenFormatter() *Formatter {
	return &Formatter{now: func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	}}
}

func TestVisitorStatusUnavailable(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.VisitorStatus(backendx.ObjectResult{
		Data: backendx.Object{},
		Err:  errors.New("backend down"),
	})
	if !strings.Contains(out, "unavailable") {
		t.Fatalf("expected explicit unavailable message, got %q", out)
	}
	if strings.Contains(out, "Visitors in store") {
		t.Fatal("must not render synthetic data for a failed fetch")
	}
}

func TestVisitorStatusBusyStore(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.VisitorStatus(backendx.ObjectResult{
		Data: backendx.Object{
			"current_visitors": float64(42),
			"timestamp":        "2026-08-25T11:55:00Z",
		},
	})
	if !strings.Contains(out, "**Visitors in store**: 42 people") {
		t.Fatalf("missing visitor count, got %q", out)
	}
	if !strings.Contains(out, "2026-08-25T11:55:00Z") {
		t.Fatalf("missing payload timestamp, got %q", out)
	}
	if !strings.Contains(out, "Busy!") {
		t.Fatalf("expected busy-store analysis for 42 visitors, got %q", out)
	}
}

func TestCashierStatusDerivesWaitTime(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.CashierStatus(backendx.ObjectResult{
		Data: backendx.Object{
			"queue_length": float64(4),
			"status":       "open",
		},
	})
	// wait_time_minutes absent: derived as queue_length * 2
	if !strings.Contains(out, "**Estimated Wait**: 8 minutes") {
		t.Fatalf("expected derived wait time, got %q", out)
	}
	if !strings.Contains(out, "**Status**: Open") {
		t.Fatalf("expected title-cased status, got %q", out)
	}
	if !strings.Contains(out, "Moderate wait expected") {
		t.Fatalf("expected moderate-queue recommendation, got %q", out)
	}
}

func TestHeatmapGroupsByDensity(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.Heatmap(backendx.ListResult{
		Data: backendx.List{
			{"section": "Entrance", "density_level": "high"},
			{"section": "Clothing", "density_level": "medium"},
			{"section": "Storage", "density_level": "low"},
			{"section": "Returns"},
		},
	})
	if !strings.Contains(out, "High Traffic Areas") || !strings.Contains(out, "**Entrance**") {
		t.Fatalf("missing high-traffic grouping: %q", out)
	}
	if !strings.Contains(out, "**Total monitored areas**: 4") {
		t.Fatalf("missing totals: %q", out)
	}
	if !strings.Contains(out, "**Low traffic**: 2 areas") {
		t.Fatalf("missing density level default to low: %q", out)
	}
}

func TestHeatmapEmpty(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.Heatmap(backendx.ListResult{Data: backendx.List{}})
	if !strings.Contains(out, "No heatmap data available") {
		t.Fatalf("expected unavailable message, got %q", out)
	}
}

func TestSectionTrafficRanksAndSummarizes(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.SectionTraffic(backendx.ListResult{
		Data: backendx.List{
			{"section": "Electronics", "total_visitors": float64(60), "records_count": float64(10)},
			{"section": "Clothing", "total_visitors": float64(40), "records_count": float64(8)},
		},
	})
	if !strings.Contains(out, "🔥 **Electronics**: 60 visitors") {
		t.Fatalf("missing top-section line: %q", out)
	}
	if !strings.Contains(out, "**Total tracked visitors**: 100") {
		t.Fatalf("missing total: %q", out)
	}
	if !strings.Contains(out, "Electronics (60.0% of traffic)") {
		t.Fatalf("missing busiest percentage: %q", out)
	}
}

func TestDailyReportPerformanceRating(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.DailyReport(backendx.ObjectResult{
		Data: backendx.Object{
			"total_visitors_today": float64(120),
			"busiest_section":      "Electronics",
			"avg_queue_length":     float64(2.5),
			"peak_hour":            "17:00",
		},
	})
	if !strings.Contains(out, "Excellent 🚀") {
		t.Fatalf("expected excellent rating for 120 visitors: %q", out)
	}
	if !strings.Contains(out, "**Average Queue Length**: 2.5 people") {
		t.Fatalf("missing queue average: %q", out)
	}
}

func TestTrafficForecastRequiresVisitorsForecast(t *testing.T) {
	t.Parallel()

	f := frozenFormatter()
	out := f.TrafficForecast(backendx.ObjectResult{
		Data: backendx.Object{"recommendation": "add staff"},
	})
	if !strings.Contains(out, "not available") {
		t.Fatalf("expected unavailable message without visitors_forecast: %q", out)
	}

	out = f.TrafficForecast(backendx.ObjectResult{
		Data: backendx.Object{
			"visitors_forecast": map[string]any{
				"predicted_value":  float64(80),
				"confidence_level": float64(0.85),
				"forecast_horizon": "2h",
			},
			"queue_forecast": map[string]any{
				"predicted_value": float64(4),
			},
			"recommendation": "Open one more cashier before 17:00.",
		},
	})
	if !strings.Contains(out, "**Expected visitors**: 80") {
		t.Fatalf("missing visitor prediction: %q", out)
	}
	if !strings.Contains(out, "**Confidence**: 85.0%") {
		t.Fatalf("missing confidence: %q", out)
	}
	if !strings.Contains(out, "**Estimated wait**: 8 minutes") {
		t.Fatalf("missing derived wait estimate: %q", out)
	}
}

func TestSectionComparison(t *testing.T) {
	t.Parallel()

	data := backendx.ListResult{
		Data: backendx.List{
			{"section": "Electronics", "total_visitors": float64(60), "records_count": float64(10)},
			{"section": "Clothing", "total_visitors": float64(40), "records_count": float64(8)},
		},
	}

	f := frozenFormatter()
	out := f.SectionComparison("electronics", "clothing", data)
	if !strings.Contains(out, "| **Visitors** | 60 | 40 |") {
		t.Fatalf("missing comparison table row: %q", out)
	}
	if !strings.Contains(out, "has 20 more visitors") {
		t.Fatalf("missing analysis: %q", out)
	}

	out = f.SectionComparison("electronics", "toys", data)
	if !strings.Contains(out, "Could not find data for: toys") {
		t.Fatalf("expected missing-section message: %q", out)
	}
}
