// Package bitmap holds sets of point indices backed by roaring bitmaps.
//
// The engine keeps the seed indices of a run in an IndexSet; every
// assigning step and every reassignment pass asks it whether a point is
// pinned to its seed cluster.
package bitmap
