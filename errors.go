package kmeansviz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when the cluster count is below MinClusters.
	ErrInvalidK = errors.New("k must be at least 2")

	// ErrNotInitialized is returned when a step is requested before Reset or Load.
	ErrNotInitialized = errors.New("engine not initialized: call Reset or Load first")

	// ErrIterationLimit is returned by Run when the iteration limit is reached
	// before convergence.
	ErrIterationLimit = errors.New("iteration limit reached before convergence")
)

// ErrTooFewPoints indicates a dataset smaller than the cluster count.
type ErrTooFewPoints struct {
	N int
	K int
}

func (e *ErrTooFewPoints) Error() string {
	return fmt.Sprintf("number of points must be at least %d (number of clusters), got %d", e.K, e.N)
}

// ErrInvalidSeed indicates a seed index that is out of range or repeated.
type ErrInvalidSeed struct {
	Index     int
	N         int
	Duplicate bool
}

func (e *ErrInvalidSeed) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("duplicate seed index: %d", e.Index)
	}
	return fmt.Sprintf("seed index %d out of range [0, %d)", e.Index, e.N)
}

// ErrPhaseMismatch indicates a phase operation called in the wrong phase.
// It is a programming error on the caller's side.
type ErrPhaseMismatch struct {
	Expected Phase
	Actual   Phase
}

func (e *ErrPhaseMismatch) Error() string {
	return fmt.Sprintf("phase mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ValidateConfig checks the preconditions of Reset.
// Callers validate user input with it before calling Reset.
func ValidateConfig(k, n int) error {
	if k < MinClusters {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if n < k {
		return &ErrTooFewPoints{N: n, K: k}
	}
	return nil
}

func validateSeeds(seeds []int, n int) error {
	seen := make(map[int]struct{}, len(seeds))
	for _, idx := range seeds {
		if idx < 0 || idx >= n {
			return &ErrInvalidSeed{Index: idx, N: n}
		}
		if _, ok := seen[idx]; ok {
			return &ErrInvalidSeed{Index: idx, N: n, Duplicate: true}
		}
		seen[idx] = struct{}{}
	}
	return nil
}
