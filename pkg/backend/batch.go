package backend

import (
	"context"
	"sync"
)

// BatchMetrics aggregates the three dashboard fetches. Each slot is resolved
// independently; a failed slot carries its empty default plus the error.
type BatchMetrics struct {
	Visitors ObjectResult
	Cashier  ObjectResult
	Heatmap  ListResult
}

// GetMultipleMetrics fetches the current visitors, cashier status, and
// heatmap concurrently, each as a single attempt without the retry loop.
// Total latency is bounded by the slowest of the three calls. The result is
// only returned once all three slots are resolved; no completion order is
// guaranteed between them.
func (c *Client) GetMultipleMetrics(ctx context.Context) BatchMetrics {
	var (
		wg  sync.WaitGroup
		out BatchMetrics
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		payload, err := c.fetchOnce(ctx, EndpointVisitorsCurrent, nil)
		if err != nil {
			out.Visitors = ObjectResult{Data: Object{}, Err: err}
			return
		}
		out.Visitors = decodeObject(EndpointVisitorsCurrent, payload)
	}()
	go func() {
		defer wg.Done()
		payload, err := c.fetchOnce(ctx, EndpointCashierCurrent, nil)
		if err != nil {
			out.Cashier = ObjectResult{Data: Object{}, Err: err}
			return
		}
		out.Cashier = decodeObject(EndpointCashierCurrent, payload)
	}()
	go func() {
		defer wg.Done()
		payload, err := c.fetchOnce(ctx, EndpointHeatmap, nil)
		if err != nil {
			out.Heatmap = ListResult{Data: List{}, Err: err}
			return
		}
		out.Heatmap = decodeList(EndpointHeatmap, payload)
	}()
	wg.Wait()

	return out
}
