package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the payment lifecycle counters and gateway latency.
type PaymentMetrics struct {
	IntentsCreatedTotal       prometheus.CounterVec
	IntentsAmountTotal        prometheus.CounterVec
	PaymentsConfirmedTotal    prometheus.CounterVec
	PaymentsConfirmedAmount   prometheus.CounterVec
	VerificationFailuresTotal prometheus.Counter
	EscrowsReleasedTotal      prometheus.CounterVec
	DisputesOpenedTotal       prometheus.Counter
	AutoReleasesTotal         prometheus.Counter
	RefundsTotal              prometheus.CounterVec
	RefundsAmountTotal        prometheus.CounterVec
	GatewayCallDuration       prometheus.HistogramVec
	MaintenanceJobRunsTotal   prometheus.CounterVec
	PaymentErrorsTotal        prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		IntentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_created_total",
				Help: "Total payment intents created",
			},
			[]string{"currency"},
		),

		IntentsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_amount_total",
				Help: "Total final amount across created intents",
			},
			[]string{"currency"},
		),

		PaymentsConfirmedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_confirmed_total",
				Help: "Total payments confirmed and captured",
			},
			[]string{"currency", "method"},
		),

		PaymentsConfirmedAmount: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_confirmed_amount_total",
				Help: "Total captured amount",
			},
			[]string{"currency"},
		),

		VerificationFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_verification_failures_total",
				Help: "Total checkout signature verification failures",
			},
		),

		EscrowsReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_total",
				Help: "Total escrows released, by initiator",
			},
			[]string{"initiator"},
		),

		DisputesOpenedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_disputes_opened_total",
				Help: "Total escrow disputes opened by buyers",
			},
		),

		AutoReleasesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "escrows_auto_released_total",
				Help: "Total escrows released by the scheduled job",
			},
		),

		RefundsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_total",
				Help: "Total refunds processed",
			},
			[]string{"currency"},
		),

		RefundsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_amount_total",
				Help: "Total refunded amount",
			},
			[]string{"currency"},
		),

		GatewayCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_call_duration_seconds",
				Help:    "Latency of payment gateway calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
			},
			[]string{"operation"},
		),

		MaintenanceJobRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maintenance_job_runs_total",
				Help: "Maintenance job executions, by job and outcome",
			},
			[]string{"job", "outcome"},
		),

		PaymentErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Payment workflow errors, by operation and kind",
			},
			[]string{"operation", "kind"},
		),
	}
}
