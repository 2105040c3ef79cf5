package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_store_operations_total",
			Help: "Total number of store operations by type and result",
		},
		[]string{"operation", "result"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tracker_store_operation_duration_seconds",
			Help: "Duration of store operations in seconds",
		},
		[]string{"operation"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_notifications_sent_total",
			Help: "Total number of notifications delivered by channel",
		},
		[]string{"channel"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_notifications_failed_total",
			Help: "Total number of notification delivery failures by channel",
		},
		[]string{"channel"},
	)

	NotificationsDeferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_notifications_deferred_total",
			Help: "Total number of notifications deferred by quiet hours",
		},
	)

	ApplicationsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_applications_tracked",
			Help: "Number of applications currently in the collection",
		},
	)
)
