package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exports ledger operation counters and volumes.
type PrometheusCollector struct {
	operations *prometheus.CounterVec
	volume     *prometheus.CounterVec
	errors     *prometheus.CounterVec
}

func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)
	return &PrometheusCollector{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger entries appended, by entry type.",
		}, []string{"type"}),
		volume: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_volume_total",
			Help: "Absolute amount moved through the ledger, by entry type.",
		}, []string{"type"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_errors_total",
			Help: "Failed ledger operations, by operation and error kind.",
		}, []string{"operation", "error"}),
	}
}

func (c *PrometheusCollector) RecordOperation(entryType string, amount float64) {
	c.operations.WithLabelValues(entryType).Inc()
	if amount < 0 {
		amount = -amount
	}
	c.volume.WithLabelValues(entryType).Add(amount)
}

func (c *PrometheusCollector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
