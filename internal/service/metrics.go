package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	workflowCreate = "create"
	workflowCancel = "cancel"
	workflowUpdate = "update"
)

var (
	workflowTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_orchestrator",
		Subsystem: "workflow",
		Name:      "total",
		Help:      "Order workflows by outcome.",
	}, []string{"workflow", "result"})

	workflowDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "order_orchestrator",
		Subsystem: "workflow",
		Name:      "duration_seconds",
		Help:      "Order workflow latencies in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"workflow"})

	compensationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_orchestrator",
		Subsystem: "workflow",
		Name:      "compensations_total",
		Help:      "Compensating actions run, by action and result.",
	}, []string{"action", "result"})
)

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
