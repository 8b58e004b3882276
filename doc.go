// Package kmeansviz provides a step-observable implementation of Lloyd's
// K-means clustering algorithm for 2-D points.
//
// The Engine owns the dataset, the centroids and the point assignments, and
// advances one observable step at a time so a presentation layer can show why
// every point ends up in its cluster.
//
// # Quick Start
//
//	eng := kmeansviz.New(kmeansviz.WithSeed(42))
//	eng.Reset(3, 25)
//
//	for !eng.Converged() {
//	    res, err := eng.Step()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res.Phase, res.Point, res.Cluster)
//	}
//
// Or run to convergence directly:
//
//	res, err := eng.Run(ctx)
//
// # State Machine
//
//	Reset/Load : (any)                 -> ASSIGNING(cursor=0, iteration=0)
//	ASSIGNING  : cursor < N-1          -> ASSIGNING(cursor+1)
//	ASSIGNING  : cursor == N-1         -> UPDATING(cursor=0)
//	UPDATING   : max shift >= 0.01     -> ASSIGNING(cursor=0, iteration+1)
//	UPDATING   : max shift <  0.01     -> CONVERGED (terminal)
//
// Every ASSIGNING step processes one point: its squared distance to every
// centroid is computed and the point joins the nearest centroid, ties going to
// the lowest cluster id. An UPDATING step moves each non-empty cluster's
// centroid to the mean of its members, reassigns all points against the new
// centroids and tests convergence. Centroids of empty clusters stay put.
//
// # Seed Points
//
// The K points chosen as initial centroid locations keep their seed cluster id
// for the whole run, even when another centroid ends up closer. Textbook
// Lloyd's algorithm would reassign them; this engine deliberately does not, so
// traces stay comparable with the reference behaviour.
//
// # Concurrency
//
// An Engine is single-owner and not safe for concurrent use. The driver
// package serializes calls when an animation loop and manual steps share one
// engine.
package kmeansviz
