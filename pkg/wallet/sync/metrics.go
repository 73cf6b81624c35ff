package sync

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the sync loop's basic Prometheus counters, following the
// same manual-registry pattern as pkg/executive.Metrics.
type Metrics struct {
	BlocksSynced  prometheus.Counter
	ReorgsHandled prometheus.Counter
	UnwoundBlocks prometheus.Counter
}

// NewMetrics builds and registers the sync loop's counters against reg. A
// nil reg uses a fresh, private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		BlocksSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_wallet_blocks_synced_total",
			Help: "Total number of blocks applied by the wallet sync loop.",
		}),
		ReorgsHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_wallet_reorgs_total",
			Help: "Total number of reorgs the wallet sync loop has unwound.",
		}),
		UnwoundBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_wallet_unwound_blocks_total",
			Help: "Total number of blocks undone during reorg unwinds.",
		}),
	}
	reg.MustRegister(m.BlocksSynced, m.ReorgsHandled, m.UnwoundBlocks)
	return m
}
