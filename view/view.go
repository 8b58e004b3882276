package view

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/distance"
	"github.com/hupe1980/kmeansviz/hull"
	"github.com/hupe1980/kmeansviz/internal/kmeans"
	"github.com/hupe1980/kmeansviz/model"
)

// Palette holds the cluster colours. Cluster i uses Palette[i%len(Palette)].
var Palette = []string{"red", "green", "blue", "yellow", "purple"}

// UnassignedColor is the colour of points without a cluster.
const UnassignedColor = "black"

// Color returns the display colour of a cluster id.
func Color(cluster int) string {
	if cluster < 0 {
		return UnassignedColor
	}
	return Palette[cluster%len(Palette)]
}

// Caption returns the title line for the given engine state.
// n is the number of points in the run.
func Caption(state kmeansviz.IterationState, n int) string {
	switch {
	case state.Converged:
		return fmt.Sprintf("Converged at Iteration: %d", state.Iteration)
	case state.Phase == kmeansviz.PhaseAssigning && state.Cursor < n:
		return fmt.Sprintf("Iteration: %d, Assigning Points, Point %d", state.Iteration, state.Cursor)
	case state.Phase == kmeansviz.PhaseAssigning:
		return fmt.Sprintf("Iteration: %d, Assigning Points", state.Iteration)
	default:
		return fmt.Sprintf("Iteration: %d, Updating Centroids", state.Iteration)
	}
}

// Candidate is one centroid considered for a point, with its Euclidean
// (not squared) distance.
type Candidate struct {
	Cluster  int     `json:"cluster"`
	Distance float64 `json:"distance"`
}

// Explanation describes why an assigning step put a point in its cluster.
type Explanation struct {
	Point   int  `json:"point"`
	Cluster int  `json:"cluster"`
	Nearest int  `json:"nearest"`
	Seed    bool `json:"seed"`
	// Candidates lists every centroid, nearest first.
	Candidates []Candidate `json:"candidates"`
	Text       string      `json:"text"`
}

// Explain builds the argmin explanation of an assigning step over the run's
// points. It returns false for any other kind of step.
func Explain(points []model.Point, res kmeansviz.StepResult) (Explanation, bool) {
	if res.Phase != kmeansviz.PhaseAssigning || res.Point < 0 || res.Point >= len(points) ||
		len(res.Distances) == 0 || len(res.Distances) != len(res.Centroids) {
		return Explanation{}, false
	}

	p := points[res.Point]
	ranked := kmeans.Rank(res.Distances)
	candidates := make([]Candidate, len(ranked))
	for i, r := range ranked {
		candidates[i] = Candidate{Cluster: r.Cluster, Distance: distance.Euclidean(p, res.Centroids[r.Cluster])}
	}

	shortest := candidates[0].Distance

	var text string
	if res.Seed && res.Cluster != res.Nearest {
		text = fmt.Sprintf("Point %d stays in Cluster %d as its seed\n(Nearest: Cluster %d, distance %.1f)",
			res.Point, res.Cluster, res.Nearest, shortest)
	} else {
		text = fmt.Sprintf("Point %d assigned to Cluster %d\n(Shortest distance: %.1f)",
			res.Point, res.Cluster, shortest)
	}

	return Explanation{
		Point:      res.Point,
		Cluster:    res.Cluster,
		Nearest:    res.Nearest,
		Seed:       res.Seed,
		Candidates: candidates,
		Text:       text,
	}, true
}

// ClusterSizes counts the points of each cluster. Unassigned points are not
// counted.
func ClusterSizes(assignments []int, k int) []int {
	sizes := make([]int, k)
	for _, c := range assignments {
		if c >= 0 && c < k {
			sizes[c]++
		}
	}
	return sizes
}

// Boundary is the convex outline of one cluster.
type Boundary struct {
	Cluster int           `json:"cluster"`
	Color   string        `json:"color"`
	Polygon []model.Point `json:"polygon"`
	Area    float64       `json:"area"`
}

// Boundaries outlines every cluster that spans a 2-D region. Clusters with
// fewer than three points or only collinear points get no boundary.
func Boundaries(points []model.Point, assignments []int, k int) ([]Boundary, error) {
	members := make([][]model.Point, k)
	for i, c := range assignments {
		if c >= 0 && c < k {
			members[c] = append(members[c], points[i])
		}
	}

	var out []Boundary
	for c, pts := range members {
		polygon, err := hull.Convex(pts)
		if err != nil {
			if errors.Is(err, hull.ErrDegenerate) {
				continue
			}
			return nil, fmt.Errorf("cluster %d: %w", c, err)
		}
		out = append(out, Boundary{
			Cluster: c,
			Color:   Color(c),
			Polygon: polygon,
			Area:    hull.Area(polygon),
		})
	}

	return out, nil
}
