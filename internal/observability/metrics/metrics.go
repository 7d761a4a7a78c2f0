// Package metrics exposes the application's prometheus instruments.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type OrderMetrics struct {
	Created           *prometheus.CounterVec
	Completed         prometheus.Counter
	Cancelled         prometheus.Counter
	InsufficientStock prometheus.Counter
}

type SchedulerMetrics struct {
	JobRuns            *prometheus.CounterVec
	JobErrors          *prometheus.CounterVec
	ExpiredDeactivated prometheus.Counter
	LowStockMedicines  prometheus.Gauge
}

var (
	orderOnce sync.Once
	orderInst *OrderMetrics

	schedOnce sync.Once
	schedInst *SchedulerMetrics
)

func Order() *OrderMetrics {
	orderOnce.Do(func() {
		orderInst = &OrderMetrics{
			Created: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "pharmaease_orders_created_total",
				Help: "Orders created, by target status.",
			}, []string{"status"}),
			Completed: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pharmaease_orders_completed_total",
				Help: "Orders moved to COMPLETED.",
			}),
			Cancelled: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pharmaease_orders_cancelled_total",
				Help: "Orders moved to CANCELLED.",
			}),
			InsufficientStock: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pharmaease_orders_insufficient_stock_total",
				Help: "Order operations rejected for insufficient stock.",
			}),
		}
	})
	return orderInst
}

func Scheduler() *SchedulerMetrics {
	schedOnce.Do(func() {
		schedInst = &SchedulerMetrics{
			JobRuns: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "pharmaease_scheduler_job_runs_total",
				Help: "Scheduler job executions.",
			}, []string{"job"}),
			JobErrors: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "pharmaease_scheduler_job_errors_total",
				Help: "Scheduler job failures.",
			}, []string{"job"}),
			ExpiredDeactivated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pharmaease_expired_batches_deactivated_total",
				Help: "Stock batches deactivated after passing expiry.",
			}),
			LowStockMedicines: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pharmaease_low_stock_medicines",
				Help: "Medicines at or below their reorder level.",
			}),
		}
	})
	return schedInst
}
