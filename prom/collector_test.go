package prom

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Run(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	points, seeds := testutil.TwoPairs()
	eng := kmeansviz.New(kmeansviz.WithMetricsCollector(c))
	require.NoError(t, eng.Load(points, seeds))

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(c.resets))
	assert.Equal(t, 2.0, promtest.ToFloat64(c.clusters))
	assert.Equal(t, 4.0, promtest.ToFloat64(c.points))
	assert.Equal(t, 8.0, promtest.ToFloat64(c.steps.WithLabelValues("assigning")))
	assert.Equal(t, 2.0, promtest.ToFloat64(c.steps.WithLabelValues("updating")))
	assert.Equal(t, 0.0, promtest.ToFloat64(c.maxShift))
	assert.Equal(t, 0.0, promtest.ToFloat64(c.emptyClusters))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.converged))

	assert.Equal(t, 2, promtest.CollectAndCount(c.stepLatency))
	n, err := promtest.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

func TestCollector_Gather(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordReset(3, 25)
	c.RecordUpdate(time.Millisecond, 0.5, 1)
	c.RecordConverged(4)

	expected := `
# HELP kmeansviz_empty_clusters_total Total clusters left without members by an update
# TYPE kmeansviz_empty_clusters_total counter
kmeansviz_empty_clusters_total 1
# HELP kmeansviz_max_centroid_shift Largest squared centroid displacement of the last update
# TYPE kmeansviz_max_centroid_shift gauge
kmeansviz_max_centroid_shift 0.5
# HELP kmeansviz_clusters Cluster count of the current run
# TYPE kmeansviz_clusters gauge
kmeansviz_clusters 3
`
	err := promtest.GatherAndCompare(reg, strings.NewReader(expected),
		"kmeansviz_empty_clusters_total",
		"kmeansviz_max_centroid_shift",
		"kmeansviz_clusters",
	)
	assert.NoError(t, err)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}
