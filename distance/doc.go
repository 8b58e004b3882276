// Package distance provides the distance calculations used by the clustering
// engine.
//
// The engine is fixed to squared Euclidean distance. Euclidean (square-rooted)
// distance is provided for display only.
//
// # Usage
//
//	d := distance.SquaredL2(p, centroid)
//	ds := distance.ToAll(p, centroids)
package distance
