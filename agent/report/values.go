package report

import (
	"fmt"
	"strings"
	"time"

	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
)

// JSON numbers decode as float64; these helpers tolerate the handful of
// shapes the backend actually sends.

func numberField(obj backendx.Object, key string) (float64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func numberFieldOr(obj backendx.Object, key string, fallback float64) float64 {
	if v, ok := numberField(obj, key); ok {
		return v
	}
	return fallback
}

func stringFieldOr(obj backendx.Object, key, fallback string) string {
	if v, ok := obj[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func objectFieldOr(obj backendx.Object, key string) backendx.Object {
	switch v := obj[key].(type) {
	case map[string]any:
		return backendx.Object(v)
	case backendx.Object:
		return v
	default:
		return nil
	}
}

func timestampOr(obj backendx.Object, key string, now func() time.Time) string {
	if v, ok := obj[key].(string); ok && v != "" {
		return v
	}
	return now().Format(time.RFC3339)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func percent(part, total float64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", part/total*100)
}
