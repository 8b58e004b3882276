package kmeans

import (
	"math"
	"sort"

	"github.com/hupe1980/kmeansviz/distance"
	"github.com/hupe1980/kmeansviz/model"
)

// Argmin returns the index of the smallest value in dists.
// Ties resolve to the lowest index (first minimum of a linear scan).
// It returns -1 for an empty slice.
func Argmin(dists []float64) int {
	best := -1
	minDist := math.Inf(1)
	for j, d := range dists {
		if best < 0 || d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// Nearest returns the index of the centroid closest to p under squared L2
// distance, together with the distance to every centroid.
func Nearest(p model.Point, centroids []model.Point) (int, []float64) {
	dists := distance.ToAll(p, centroids)
	return Argmin(dists), dists
}

// AssignAll sets assignments[i] to the nearest centroid for every point not in
// skip. It returns the number of assignments that changed.
func AssignAll(points, centroids []model.Point, assignments []int, skip func(int) bool) int {
	dists := make([]float64, len(centroids))
	changed := 0
	for i, p := range points {
		if skip != nil && skip(i) {
			continue
		}
		distance.ToAllInto(dists, p, centroids)
		best := Argmin(dists)
		if assignments[i] != best {
			assignments[i] = best
			changed++
		}
	}
	return changed
}

// Recenter moves every centroid to the coordinate-wise mean of the points
// assigned to it. Centroids of empty clusters stay where they are.
// It returns the member count per cluster.
func Recenter(points []model.Point, assignments []int, centroids []model.Point) []int {
	k := len(centroids)
	counts := make([]int, k)
	sums := make([]model.Point, k)

	for i, p := range points {
		c := assignments[i]
		if c < 0 || c >= k {
			continue
		}
		sums[c].X += p.X
		sums[c].Y += p.Y
		counts[c]++
	}

	for j := 0; j < k; j++ {
		if counts[j] == 0 {
			continue
		}
		n := float64(counts[j])
		centroids[j] = model.Point{X: sums[j].X / n, Y: sums[j].Y / n}
	}

	return counts
}

// MaxShift returns the largest squared displacement between matching
// centroids of prev and cur.
func MaxShift(prev, cur []model.Point) float64 {
	maxShift := 0.0
	for j := range cur {
		if d := distance.SquaredL2(prev[j], cur[j]); d > maxShift {
			maxShift = d
		}
	}
	return maxShift
}

// CentroidDist pairs a cluster id with its distance to a query point.
type CentroidDist struct {
	Cluster  int
	Distance float64
}

// Rank orders the per-centroid distances ascending. Equal distances keep
// cluster order, so Rank(d)[0].Cluster == Argmin(d).
func Rank(dists []float64) []CentroidDist {
	out := make([]CentroidDist, len(dists))
	for i, d := range dists {
		out[i] = CentroidDist{Cluster: i, Distance: d}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	return out
}
