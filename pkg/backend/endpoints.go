package backend

// Logical resource names for the analytics backend. The paths must match the
// backend routes exactly, including the trailing slash on heatmap and
// predictions.
const (
	EndpointHealth          = "/health"
	EndpointVisitorsCurrent = "/api/visitors/current"
	EndpointVisitorsSection = "/api/visitors/sections"
	EndpointVisitorsRange   = "/api/visitors/range"
	EndpointCashierCurrent  = "/api/cashier/current"
	EndpointCashierHistory  = "/api/cashier/history"
	EndpointCashierWaitTime = "/api/cashier/wait-time"
	EndpointHeatmap         = "/api/heatmap/"
	EndpointPredictions     = "/api/predictions/"
	EndpointDailyAnalytics  = "/api/visitors/analytics/daily"
)
