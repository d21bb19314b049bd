package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "orders_processed_total",
			Help:      "Total number of order requests that produced a confirmed order",
		},
	)

	ordersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "orders_failed_total",
			Help:      "Total number of order requests whose workflow cancelled the order",
		},
	)

	ordersDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "orders_dlq_total",
			Help:      "Total number of order requests written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	orderProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "order_processing_duration_seconds",
			Help:      "Histogram of order request processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	ordersInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "order_orchestrator",
			Subsystem: "kafka_consumer",
			Name:      "orders_in_progress",
			Help:      "Number of order requests currently being processed",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersProcessed,
		ordersFailed,
		ordersDLQ,
		commitErrors,
		orderProcessingDuration,
		ordersInProgress,
	)
}
