package prom

import (
	"time"

	"github.com/hupe1980/kmeansviz"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kmeansviz"

// Collector implements kmeansviz.MetricsCollector on Prometheus metrics.
type Collector struct {
	resets        prometheus.Counter
	steps         *prometheus.CounterVec
	stepLatency   *prometheus.HistogramVec
	maxShift      prometheus.Gauge
	emptyClusters prometheus.Counter
	converged     prometheus.Counter
	iterations    prometheus.Histogram
	clusters      prometheus.Gauge
	points        prometheus.Gauge
}

var _ kmeansviz.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Total runs started by Reset or Load",
		}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Total steps performed, by phase",
		}, []string{"phase"}),
		stepLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Latency of engine steps, by phase",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"phase"}),
		maxShift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_centroid_shift",
			Help:      "Largest squared centroid displacement of the last update",
		}),
		emptyClusters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_clusters_total",
			Help:      "Total clusters left without members by an update",
		}),
		converged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "converged_total",
			Help:      "Total runs that converged",
		}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iterations_to_converge",
			Help:      "Update passes a run needed to converge",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Cluster count of the current run",
		}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "points",
			Help:      "Point count of the current run",
		}),
	}

	reg.MustRegister(
		c.resets,
		c.steps,
		c.stepLatency,
		c.maxShift,
		c.emptyClusters,
		c.converged,
		c.iterations,
		c.clusters,
		c.points,
	)

	return c
}

// RecordReset implements kmeansviz.MetricsCollector.
func (c *Collector) RecordReset(k, n int) {
	c.resets.Inc()
	c.clusters.Set(float64(k))
	c.points.Set(float64(n))
}

// RecordAssign implements kmeansviz.MetricsCollector.
func (c *Collector) RecordAssign(d time.Duration) {
	phase := kmeansviz.PhaseAssigning.String()
	c.steps.WithLabelValues(phase).Inc()
	c.stepLatency.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordUpdate implements kmeansviz.MetricsCollector.
func (c *Collector) RecordUpdate(d time.Duration, maxShift float64, emptyClusters int) {
	phase := kmeansviz.PhaseUpdating.String()
	c.steps.WithLabelValues(phase).Inc()
	c.stepLatency.WithLabelValues(phase).Observe(d.Seconds())
	c.maxShift.Set(maxShift)
	c.emptyClusters.Add(float64(emptyClusters))
}

// RecordConverged implements kmeansviz.MetricsCollector.
func (c *Collector) RecordConverged(iterations int) {
	c.converged.Inc()
	c.iterations.Observe(float64(iterations))
}
