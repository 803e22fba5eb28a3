// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "budgetbuddy"

var (
	// TransactionsAdded counts transactions accepted by the ledger, by type.
	TransactionsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_added_total",
		Help:      "Transactions added to user ledgers.",
	}, []string{"type"})

	// TransactionsRejected counts add attempts dropped by validation.
	TransactionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_rejected_total",
		Help:      "Add attempts rejected by validation.",
	})

	// BudgetBreaches counts breach alerts raised on add, by scope (global or category).
	BudgetBreaches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_breaches_total",
		Help:      "Budget breach alerts raised when adding expenses.",
	}, []string{"scope"})

	// InsightRequests counts insight generations by outcome (ok, empty, error).
	InsightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_requests_total",
		Help:      "Spending insight requests by outcome.",
	}, []string{"outcome"})

	// RPCDuration observes handler latency per procedure and Connect code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})
)

// Breach scopes.
const (
	ScopeGlobal   = "global"
	ScopeCategory = "category"
)
