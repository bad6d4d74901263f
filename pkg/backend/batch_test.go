package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetMultipleMetricsIndependentSlots(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EndpointVisitorsCurrent:
			fmt.Fprint(w, `{"current_visitors": 12}`)
		case EndpointCashierCurrent:
			fmt.Fprint(w, `{"queue_length": 3}`)
		case EndpointHeatmap:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, 3)
	out := client.GetMultipleMetrics(context.Background())

	if out.Visitors.Unavailable() {
		t.Fatalf("visitors slot failed: %v", out.Visitors.Err)
	}
	if out.Visitors.Data["current_visitors"] != float64(12) {
		t.Fatalf("unexpected visitors payload: %v", out.Visitors.Data)
	}
	if out.Cashier.Unavailable() {
		t.Fatalf("cashier slot failed: %v", out.Cashier.Err)
	}
	if out.Cashier.Data["queue_length"] != float64(3) {
		t.Fatalf("unexpected cashier payload: %v", out.Cashier.Data)
	}

	if !out.Heatmap.Unavailable() {
		t.Fatal("heatmap slot must carry the failure")
	}
	if out.Heatmap.Data == nil || len(out.Heatmap.Data) != 0 {
		t.Fatalf("heatmap slot must hold the empty default, got %v", out.Heatmap.Data)
	}
}

func TestGetMultipleMetricsSingleAttemptPerSlot(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	// MaxRetries is deliberately high: the batch path must not retry.
	client := newTestClient(t, server.URL, 5)
	out := client.GetMultipleMetrics(context.Background())

	if got := attempts.Load(); got != 3 {
		t.Fatalf("expected 3 single-attempt requests, got %d", got)
	}
	for _, unavailable := range []bool{
		out.Visitors.Unavailable(),
		out.Cashier.Unavailable(),
		out.Heatmap.Unavailable(),
	} {
		if !unavailable {
			t.Fatal("every slot must be unavailable")
		}
	}
}

func TestGetMultipleMetricsRunsConcurrently(t *testing.T) {
	t.Parallel()

	const perRequestDelay = 150 * time.Millisecond
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(perRequestDelay)
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, 1)

	started := time.Now()
	client.GetMultipleMetrics(context.Background())
	elapsed := time.Since(started)

	// Three sequential calls would take at least 3x the delay.
	if elapsed >= 3*perRequestDelay {
		t.Fatalf("batch took %v, expected concurrent fetches bounded by the slowest call", elapsed)
	}
}
