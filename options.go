package kmeansviz

import (
	"log/slog"
	"math/rand"
	"time"
)

const (
	// MinClusters is the smallest supported cluster count.
	MinClusters = 2
	// DefaultClusters is the cluster count of a fresh session.
	DefaultClusters = 3
	// DefaultPoints is the point count of a fresh session.
	DefaultPoints = 25
	// DefaultMin is the inclusive lower bound of generated coordinates.
	DefaultMin = 0.0
	// DefaultMax is the exclusive upper bound of generated coordinates.
	DefaultMax = 500.0
	// DefaultConvergenceThreshold is the squared centroid movement below which
	// an update counts as converged.
	DefaultConvergenceThreshold = 0.01
	// DefaultMaxIterations bounds Run.
	DefaultMaxIterations = 1000
)

// ClusterCounts lists the cluster counts offered to users.
var ClusterCounts = []int{2, 3, 4, 5}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	rng              *rand.Rand
	minCoord         float64
	maxCoord         float64
	threshold        float64
	maxIterations    int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		minCoord:         DefaultMin,
		maxCoord:         DefaultMax,
		threshold:        DefaultConvergenceThreshold,
		maxIterations:    DefaultMaxIterations,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithLogger configures structured logging for engine operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeansviz.NewJSONLogger(slog.LevelInfo)
//	eng := kmeansviz.New(kmeansviz.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring steps.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeansviz.BasicMetricsCollector{}
//	eng := kmeansviz.New(kmeansviz.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Updates: %d, Avg latency: %dns\n", stats.UpdateCount, stats.UpdateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithSeed makes dataset generation and seed selection deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) // nolint gosec
	}
}

// WithRand sets the random source used by Reset.
// The engine takes ownership of r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithBounds sets the coordinate range [minCoord, maxCoord) of generated points.
// Invalid ranges (maxCoord <= minCoord) are ignored.
func WithBounds(minCoord, maxCoord float64) Option {
	return func(o *options) {
		if maxCoord <= minCoord {
			return
		}
		o.minCoord = minCoord
		o.maxCoord = maxCoord
	}
}

// WithConvergenceThreshold sets the squared centroid movement below which the
// run converges. Non-positive values are ignored.
func WithConvergenceThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold > 0 {
			o.threshold = threshold
		}
	}
}

// WithMaxIterations bounds the number of update steps Run performs.
// If maxIterations <= 0, Run is unbounded.
func WithMaxIterations(maxIterations int) Option {
	return func(o *options) {
		o.maxIterations = maxIterations
	}
}

func newDefaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
}
