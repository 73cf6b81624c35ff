package executive

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Executive's basic Prometheus counters. The teacher's
// go.mod carries client_golang as a dependency no call site exercises;
// this is the first one that does.
type Metrics struct {
	BlocksApplied    prometheus.Counter
	TxApplied        prometheus.Counter
	TxValidateErrors prometheus.Counter
}

// NewMetrics builds and registers the Executive's counters against reg. A
// nil reg uses a fresh, private registry (tests don't want to collide with
// the process-wide default registerer).
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		BlocksApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_blocks_applied_total",
			Help: "Total number of blocks successfully executed.",
		}),
		TxApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_tx_applied_total",
			Help: "Total number of transactions successfully applied.",
		}),
		TxValidateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_tx_validate_errors_total",
			Help: "Total number of transactions rejected during validation.",
		}),
	}
	reg.MustRegister(m.BlocksApplied, m.TxApplied, m.TxValidateErrors)
	return m
}
