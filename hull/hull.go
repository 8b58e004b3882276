// Package hull computes convex hulls of 2-D point sets.
//
// It is used to outline the clusters of a converged run.
package hull

import (
	"errors"
	"slices"

	"github.com/hupe1980/kmeansviz/model"
)

// ErrDegenerate is returned when the points do not span a 2-D region:
// fewer than three distinct points, or all points collinear.
var ErrDegenerate = errors.New("hull: degenerate point set")

// Convex returns the convex hull of points in counter-clockwise order,
// starting from the lowest-leftmost point. The polygon is not closed
// (the first vertex is not repeated). Collinear boundary points are dropped.
func Convex(points []model.Point) ([]model.Point, error) {
	if len(points) < 3 {
		return nil, ErrDegenerate
	}

	pts := model.ClonePoints(points)
	slices.SortFunc(pts, func(a, b model.Point) int {
		if a.X != b.X {
			if a.X < b.X {
				return -1
			}
			return 1
		}
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		default:
			return 0
		}
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return nil, ErrDegenerate
	}

	// Andrew's monotone chain.
	h := make([]model.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(h) >= 2 && cross(h[len(h)-2], h[len(h)-1], p) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, p)
	}
	lower := len(h) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(h) >= lower && cross(h[len(h)-2], h[len(h)-1], p) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, p)
	}
	h = h[:len(h)-1]

	if len(h) < 3 {
		return nil, ErrDegenerate
	}
	return h, nil
}

// Area returns the area of a simple polygon given by its vertices.
func Area(polygon []model.Point) float64 {
	var twice float64
	for i, p := range polygon {
		q := polygon[(i+1)%len(polygon)]
		twice += p.X*q.Y - q.X*p.Y
	}
	if twice < 0 {
		twice = -twice
	}
	return twice / 2
}

// cross returns the z component of (a->b) x (a->c). Positive for a
// counter-clockwise turn.
func cross(a, b, c model.Point) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab.X*ac.Y - ab.Y*ac.X
}
