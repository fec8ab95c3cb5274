// Package metrics holds the Prometheus collectors for RPC traffic and ledger
// activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gymdesk"

// Metrics is the set of collectors exported by the server.
type Metrics struct {
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	Payments      *prometheus.CounterVec
	Billed        prometheus.Counter
	Transactions  *prometheus.CounterVec
	Collected     *prometheus.CounterVec
	Compensations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_created_total",
			Help:      "Payments created by renewals, by initial status.",
		}, []string{"status"}),
		Billed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_billed_amount_total",
			Help:      "Sum of payment totals created by renewals.",
		}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Ledger transactions by kind and payment method.",
		}, []string{"kind", "method"}),
		Collected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_amount_total",
			Help:      "Amount collected by payment method.",
		}, []string{"method"}),
		Compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Units of work rolled back by compensating writes.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.RPCRequests, m.RPCDuration,
		m.Payments, m.Billed, m.Transactions, m.Collected, m.Compensations,
	)
	return m
}

// PaymentCreated records a new payment.
func (m *Metrics) PaymentCreated(status string, total float64) {
	m.Payments.WithLabelValues(status).Inc()
	if total > 0 {
		m.Billed.Add(total)
	}
}

// TransactionRecorded records a ledger transaction.
func (m *Metrics) TransactionRecorded(kind, method string, amount float64) {
	m.Transactions.WithLabelValues(kind, method).Inc()
	if amount > 0 {
		m.Collected.WithLabelValues(method).Add(amount)
	}
}

// Compensated records a rolled back unit of work.
func (m *Metrics) Compensated(op string) {
	m.Compensations.WithLabelValues(op).Inc()
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}
