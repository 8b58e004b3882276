package kmeansviz

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prom).
type MetricsCollector interface {
	// RecordReset is called after each Reset or Load.
	RecordReset(k, n int)

	// RecordAssign is called after each assigning step.
	RecordAssign(duration time.Duration)

	// RecordUpdate is called after each updating step.
	// maxShift is the largest squared centroid displacement,
	// emptyClusters the number of clusters left without members.
	RecordUpdate(duration time.Duration, maxShift float64, emptyClusters int)

	// RecordConverged is called once per run when it converges.
	RecordConverged(iterations int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReset(int, int)                     {}
func (NoopMetricsCollector) RecordAssign(time.Duration)               {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, float64, int) {}
func (NoopMetricsCollector) RecordConverged(int)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ResetCount        atomic.Int64
	AssignCount       atomic.Int64
	AssignTotalNanos  atomic.Int64
	UpdateCount       atomic.Int64
	UpdateTotalNanos  atomic.Int64
	EmptyClusterCount atomic.Int64
	ConvergedCount    atomic.Int64
	IterationsTotal   atomic.Int64
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(int, int) {
	b.ResetCount.Add(1)
}

// RecordAssign implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssign(duration time.Duration) {
	b.AssignCount.Add(1)
	b.AssignTotalNanos.Add(duration.Nanoseconds())
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, _ float64, emptyClusters int) {
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
	b.EmptyClusterCount.Add(int64(emptyClusters))
}

// RecordConverged implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConverged(iterations int) {
	b.ConvergedCount.Add(1)
	b.IterationsTotal.Add(int64(iterations))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ResetCount:        b.ResetCount.Load(),
		AssignCount:       b.AssignCount.Load(),
		AssignAvgNanos:    avgNanos(b.AssignTotalNanos.Load(), b.AssignCount.Load()),
		UpdateCount:       b.UpdateCount.Load(),
		UpdateAvgNanos:    avgNanos(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		EmptyClusterCount: b.EmptyClusterCount.Load(),
		ConvergedCount:    b.ConvergedCount.Load(),
		IterationsTotal:   b.IterationsTotal.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ResetCount        int64
	AssignCount       int64
	AssignAvgNanos    int64
	UpdateCount       int64
	UpdateAvgNanos    int64
	EmptyClusterCount int64
	ConvergedCount    int64
	IterationsTotal   int64
}
