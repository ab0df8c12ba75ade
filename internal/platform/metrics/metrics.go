// Package metrics exposes Prometheus instruments for the order service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics holds the instruments recorded by the order service.
type OrderMetrics struct {
	OrdersCreated        prometheus.Counter
	Transitions          *prometheus.CounterVec
	Compensations        prometheus.Counter
	NotificationFailures prometheus.Counter
	OperationSeconds     *prometheus.HistogramVec
}

// NewOrderMetrics creates and registers order service instruments on the
// given registerer. Passing nil registers on the default registry.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &OrderMetrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wharfside",
			Subsystem: "order",
			Name:      "orders_created_total",
			Help:      "Total number of orders created.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wharfside",
			Subsystem: "order",
			Name:      "combo_transitions_total",
			Help:      "Total number of fulfillment status transitions applied.",
		}, []string{"to_status"}),
		Compensations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wharfside",
			Subsystem: "order",
			Name:      "compensations_total",
			Help:      "Total number of cancellation compensations applied.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wharfside",
			Subsystem: "order",
			Name:      "notification_failures_total",
			Help:      "Total number of dropped or failed status notifications.",
		}),
		OperationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wharfside",
			Subsystem: "order",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(
		m.OrdersCreated,
		m.Transitions,
		m.Compensations,
		m.NotificationFailures,
		m.OperationSeconds,
	)
	return m
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
