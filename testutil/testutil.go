package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeansviz/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns k distinct indices from [0,n), chosen uniformly.
func (r *RNG) Perm(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)[:k]
}

// UniformPoints generates num points with both coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num int, minVal, maxVal float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	points := make([]model.Point, num)
	for i := range num {
		points[i] = model.Point{
			X: minVal + r.rand.Float64()*span,
			Y: minVal + r.rand.Float64()*span,
		}
	}

	return points
}

// ClusteredPoints generates num points around the given centers with
// Gaussian noise of the given spread. Point i belongs to centers[i%len(centers)].
func (r *RNG) ClusteredPoints(num int, centers []model.Point, spread float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, num)
	for i := range num {
		c := centers[i%len(centers)]
		points[i] = model.Point{
			X: c.X + r.rand.NormFloat64()*spread,
			Y: c.Y + r.rand.NormFloat64()*spread,
		}
	}

	return points
}

// TwoPairs returns two tight pairs of points far apart, seeded with one
// point of each pair. Lloyd's algorithm separates them after one update.
func TwoPairs() ([]model.Point, []int) {
	return []model.Point{
		{X: 0, Y: 0},
		{X: 0, Y: 1},
		{X: 10, Y: 10},
		{X: 10, Y: 11},
	}, []int{0, 2}
}

// Triangle returns three points that are all seeds.
func Triangle() ([]model.Point, []int) {
	return []model.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 50, Y: 80},
	}, []int{0, 1, 2}
}

// PinnedSeed returns a dataset whose second seed ends up nearer the
// centroid of cluster 0 than its own after the first update. The seed keeps
// cluster 1 regardless.
//
// Seeds: 0 -> cluster 0 at (0,0), 1 -> cluster 1 at (4,0).
// Final centroids: (-0.5,0) and (26/3,0).
func PinnedSeed() ([]model.Point, []int) {
	return []model.Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 10, Y: 0},
		{X: 12, Y: 0},
		{X: -1, Y: 0},
	}, []int{0, 1}
}
