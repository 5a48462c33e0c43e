package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring pipeline health
var (
	TransactionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_transactions_total",
			Help: "Total number of transactions submitted to the pipeline",
		},
	)

	TransactionsSucceededTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_transactions_succeeded_total",
			Help: "Total number of transactions that completed with a successful charge",
		},
	)

	TransactionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_transactions_rejected_total",
			Help: "Total number of transactions aborted by input validation",
		},
	)

	TransactionsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_transactions_failed_total",
			Help: "Total number of transactions aborted by a gateway failure",
		},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payflow_notifications_sent_total",
			Help: "Total number of confirmation notifications delivered, by channel",
		},
		[]string{"channel"},
	)

	NotificationsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payflow_notifications_failed_total",
			Help: "Total number of confirmation notifications that failed, by channel",
		},
		[]string{"channel"},
	)

	NotificationsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_notifications_skipped_total",
			Help: "Total number of transactions with no usable contact information",
		},
	)

	LogAppendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payflow_log_append_failures_total",
			Help: "Total number of failed transaction log appends",
		},
	)

	ChargeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payflow_charge_duration_seconds",
			Help:    "Duration of gateway charge calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(TransactionsSucceededTotal)
	prometheus.MustRegister(TransactionsRejectedTotal)
	prometheus.MustRegister(TransactionsFailedTotal)
	prometheus.MustRegister(NotificationsSentTotal)
	prometheus.MustRegister(NotificationsFailedTotal)
	prometheus.MustRegister(NotificationsSkippedTotal)
	prometheus.MustRegister(LogAppendFailuresTotal)
	prometheus.MustRegister(ChargeDuration)
}
