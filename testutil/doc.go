// Package testutil provides testing utilities for kmeansviz.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic RNG for generating 2-D datasets and a few
// fixed datasets with known clustering outcomes.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, 0, 500)
//	blobs := rng.ClusteredPoints(100, centers, 5)
//
// # Fixtures
//
//	points, seeds := testutil.TwoPairs()
package testutil
