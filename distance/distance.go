package distance

import (
	"math"

	"github.com/hupe1980/kmeansviz/model"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two points.
func SquaredL2(a, b model.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Euclidean calculates the L2 distance between two points.
func Euclidean(a, b model.Point) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// ToAll returns the squared L2 distance from p to every centroid, in centroid
// order.
func ToAll(p model.Point, centroids []model.Point) []float64 {
	out := make([]float64, len(centroids))
	ToAllInto(out, p, centroids)
	return out
}

// ToAllInto writes the squared L2 distance from p to every centroid into dst.
// dst must have len(centroids) elements (caller's responsibility).
func ToAllInto(dst []float64, p model.Point, centroids []model.Point) {
	for i, c := range centroids {
		dst[i] = SquaredL2(p, c)
	}
}
