package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const defaultWindowHours = 6

// Object is a decoded JSON object payload.
type Object map[string]any

// List is a decoded JSON array of objects.
type List []Object

// ObjectResult carries a singular-resource payload. Data is never nil: when
// the fetch failed, Err holds the terminal error and Data is the empty
// default, so callers can distinguish "legitimately empty" from "fetch
// failed" without ever receiving an unhandled absence.
type ObjectResult struct {
	Data Object
	Err  error
}

func (r ObjectResult) Unavailable() bool {
	return r.Err != nil
}

// ListResult is the list-endpoint counterpart of ObjectResult.
type ListResult struct {
	Data List
	Err  error
}

func (r ListResult) Unavailable() bool {
	return r.Err != nil
}

func (c *Client) fetchObject(ctx context.Context, endpoint string, params map[string]string) ObjectResult {
	payload, err := c.fetchJSON(ctx, endpoint, params, "")
	if err != nil {
		return ObjectResult{Data: Object{}, Err: err}
	}
	return decodeObject(endpoint, payload)
}

func (c *Client) fetchList(ctx context.Context, endpoint string, params map[string]string) ListResult {
	payload, err := c.fetchJSON(ctx, endpoint, params, "")
	if err != nil {
		return ListResult{Data: List{}, Err: err}
	}
	return decodeList(endpoint, payload)
}

func decodeObject(endpoint string, payload json.RawMessage) ObjectResult {
	var data Object
	if err := json.Unmarshal(payload, &data); err != nil {
		return ObjectResult{
			Data: Object{},
			Err:  fmt.Errorf("decode %s object payload: %w", endpoint, err),
		}
	}
	if data == nil {
		data = Object{}
	}
	return ObjectResult{Data: data}
}

func decodeList(endpoint string, payload json.RawMessage) ListResult {
	var data List
	if err := json.Unmarshal(payload, &data); err != nil {
		return ListResult{
			Data: List{},
			Err:  fmt.Errorf("decode %s list payload: %w", endpoint, err),
		}
	}
	if data == nil {
		data = List{}
	}
	return ListResult{Data: data}
}

// CheckBackendHealth never fails: an unreachable backend is reported as a
// degraded status object carrying the error message.
func (c *Client) CheckBackendHealth(ctx context.Context) Object {
	result := c.fetchObject(ctx, EndpointHealth, nil)
	if result.Unavailable() {
		return Object{
			"status": "unhealthy",
			"error":  result.Err.Error(),
		}
	}
	return result.Data
}

// GetCurrentVisitors returns the current visitor count.
func (c *Client) GetCurrentVisitors(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointVisitorsCurrent, nil)
}

// GetSectionTraffic returns the visitor distribution by store section.
func (c *Client) GetSectionTraffic(ctx context.Context) ListResult {
	return c.fetchList(ctx, EndpointVisitorsSection, nil)
}

// GetDailyAnalytics returns the daily analytics summary.
func (c *Client) GetDailyAnalytics(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointDailyAnalytics, nil)
}

// GetVisitorTrend returns the visitor trend over a window of `hours` hours
// ending now. Non-positive hours falls back to the default window.
func (c *Client) GetVisitorTrend(ctx context.Context, hours int) ListResult {
	if hours <= 0 {
		hours = defaultWindowHours
	}
	endTime := c.now()
	startTime := endTime.Add(-time.Duration(hours) * time.Hour)
	params := map[string]string{
		"start_time": startTime.Format(time.RFC3339),
		"end_time":   endTime.Format(time.RFC3339),
	}
	return c.fetchList(ctx, EndpointVisitorsRange, params)
}

// GetCashierStatus returns the current cashier queue status.
func (c *Client) GetCashierStatus(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointCashierCurrent, nil)
}

// GetQueueHistory returns the cashier queue history for the last `hours`
// hours.
func (c *Client) GetQueueHistory(ctx context.Context, hours int) ListResult {
	if hours <= 0 {
		hours = defaultWindowHours
	}
	params := map[string]string{
		"hours": strconv.Itoa(hours),
	}
	return c.fetchList(ctx, EndpointCashierHistory, params)
}

// GetWaitTime returns the estimated checkout wait time.
func (c *Client) GetWaitTime(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointCashierWaitTime, nil)
}

// GetHeatmapData returns the latest store heatmap.
func (c *Client) GetHeatmapData(ctx context.Context) ListResult {
	return c.fetchList(ctx, EndpointHeatmap, nil)
}

// GetDensityAnalysis returns the heatmap density analysis.
func (c *Client) GetDensityAnalysis(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointHeatmap+"analysis", nil)
}

// GetPredictions returns all available predictions.
func (c *Client) GetPredictions(ctx context.Context) ListResult {
	return c.fetchList(ctx, EndpointPredictions, nil)
}

// GetTrafficForecast returns the traffic forecast.
func (c *Client) GetTrafficForecast(ctx context.Context) ObjectResult {
	return c.fetchObject(ctx, EndpointPredictions+"traffic/forecast", nil)
}

// GetMetricPrediction returns the prediction for one metric. Horizon
// defaults to 4h.
func (c *Client) GetMetricPrediction(ctx context.Context, metricType, horizon string) ObjectResult {
	if metricType == "" {
		return ObjectResult{
			Data: Object{},
			Err:  fmt.Errorf("metric type is required"),
		}
	}
	if horizon == "" {
		horizon = "4h"
	}
	params := map[string]string{
		"horizon": horizon,
	}
	return c.fetchObject(ctx, EndpointPredictions+"metric/"+metricType, params)
}
