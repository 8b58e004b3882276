// Package kmeans implements the Lloyd's algorithm primitives used by the
// step-observable clustering engine: nearest-centroid search, centroid
// recomputation and centroid movement.
package kmeans
