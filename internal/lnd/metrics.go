package lnd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	handleCreations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lnbridge",
		Name:      "handle_creations_total",
		Help:      "Number of times a fresh client handle was constructed.",
	})

	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lnbridge",
		Name:      "calls_total",
		Help:      "RPC calls dispatched, labeled by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeOK            = "ok"
	outcomeWalletLocked  = "wallet_locked"
	outcomeUnreachable   = "node_unreachable"
	outcomeUncategorized = "uncategorized"
)
