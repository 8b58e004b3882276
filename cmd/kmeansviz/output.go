package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/model"
	"github.com/hupe1980/kmeansviz/view"
)

// printStep writes the caption of state and, for assigning steps, the
// argmin explanation of res.
func printStep(w io.Writer, points []model.Point, res kmeansviz.StepResult, state kmeansviz.IterationState, verbose bool) {
	fmt.Fprintln(w, view.Caption(state, len(points)))

	if ex, ok := view.Explain(points, res); ok {
		fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(ex.Text, "\n", " "))
		if verbose {
			for _, c := range ex.Candidates {
				fmt.Fprintf(w, "    cluster %d (%s): %.1f\n", c.Cluster, view.Color(c.Cluster), c.Distance)
			}
		}
		return
	}

	if res.Phase == kmeansviz.PhaseUpdating {
		fmt.Fprintf(w, "  max centroid shift %.4f\n", res.MaxShift)
		if verbose {
			printCentroids(w, res.Centroids)
		}
	}
}

func printCentroids(w io.Writer, centroids []model.Point) {
	for c, p := range centroids {
		fmt.Fprintf(w, "    centroid %d (%s): %s\n", c, view.Color(c), p)
	}
}

// printSummary writes the final clustering with cluster sizes and boundaries.
func printSummary(w io.Writer, points []model.Point, res kmeansviz.StepResult) error {
	k := len(res.Centroids)

	if res.Converged {
		fmt.Fprintf(w, "Converged at Iteration: %d\n", res.Iteration)
	} else {
		fmt.Fprintf(w, "Stopped at Iteration: %d\n", res.Iteration)
	}

	sizes := view.ClusterSizes(res.Assignments, k)
	for c, p := range res.Centroids {
		fmt.Fprintf(w, "  cluster %d (%s): %d points, centroid %s\n", c, view.Color(c), sizes[c], p)
	}

	if !res.Converged {
		return nil
	}

	boundaries, err := view.Boundaries(points, res.Assignments, k)
	if err != nil {
		return err
	}
	for _, b := range boundaries {
		fmt.Fprintf(w, "  boundary %d: %d vertices, area %.1f\n", b.Cluster, len(b.Polygon), b.Area)
	}

	missing := k - len(boundaries)
	if missing > 0 {
		var ids []int
		for c := range k {
			if !slices.ContainsFunc(boundaries, func(b view.Boundary) bool { return b.Cluster == c }) {
				ids = append(ids, c)
			}
		}
		fmt.Fprintf(w, "  no boundary for clusters %v\n", ids)
	}
	return nil
}
