package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline-level counters. HTTP request metrics live in the router
// middleware; these track what the order pipeline actually did.
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created and confirmed with the carrier",
	})

	OrdersFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Order creation attempts that failed, by stage",
	}, []string{"stage"})

	OrdersCompensated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_compensated_total",
		Help: "Orders deleted (stock restored) after a post-commit failure",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "User-initiated cancellations confirmed by the carrier",
	})

	WebhookEventsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_webhook_events_total",
		Help: "Carrier status webhook events, by outcome",
	}, []string{"outcome"})
)
