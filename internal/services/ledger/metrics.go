package ledger

// MetricsCollector defines the metrics hooks for ledger operations.
type MetricsCollector interface {
	RecordOperation(entryType string, amount float64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperation(string, float64) {}
func (n *NoopMetricsCollector) RecordError(string, string)      {}
