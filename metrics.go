package kdense

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement it to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRestart is called after each random restart converges.
	// passes is the turn's pass count, duration the wall time it took.
	RecordRestart(passes int, duration time.Duration)

	// RecordReseed is called after the final density-reseeded turn.
	RecordReseed(passes int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRestart(int, time.Duration) {}
func (NoopMetricsCollector) RecordReseed(int, time.Duration)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Counters are atomic so the parallel restart mode can share one collector.
type BasicMetricsCollector struct {
	RestartCount      atomic.Int64
	RestartPasses     atomic.Int64
	RestartTotalNanos atomic.Int64
	ReseedCount       atomic.Int64
	ReseedPasses      atomic.Int64
	ReseedTotalNanos  atomic.Int64
}

// RecordRestart implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestart(passes int, duration time.Duration) {
	b.RestartCount.Add(1)
	b.RestartPasses.Add(int64(passes))
	b.RestartTotalNanos.Add(duration.Nanoseconds())
}

// RecordReseed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReseed(passes int, duration time.Duration) {
	b.ReseedCount.Add(1)
	b.ReseedPasses.Add(int64(passes))
	b.ReseedTotalNanos.Add(duration.Nanoseconds())
}
