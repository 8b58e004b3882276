// Package model defines the value types shared by the clustering engine and
// its presentation helpers.
//
// # Types
//
//   - Point: a 2-D coordinate. Used for dataset points and centroids alike.
//   - Unassigned: the cluster id of a point that has not been assigned yet.
package model
