package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_operations_total",
			Help: "Todo mutations by operation and outcome",
		},
		[]string{"op", "result"},
	)
	items = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "todo_items",
			Help: "Items currently in the list",
		},
		[]string{"state"},
	)
	rlRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	rlBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(opsTotal, items, rlRequests, rlBlocked)
}
