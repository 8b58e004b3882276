package trace

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/kmeansviz"
)

// ErrMismatch is returned by Replay when the engine diverges from the
// recording.
type ErrMismatch struct {
	Step  int
	Field string
}

func (e *ErrMismatch) Error() string {
	return fmt.Sprintf("trace: step %d diverges from recording in %s", e.Step, e.Field)
}

// Replay re-runs t on a fresh engine and checks every step against the
// recording. It returns the engine positioned after the last recorded step.
func Replay(ctx context.Context, t *Trace, optFns ...kmeansviz.Option) (*kmeansviz.Engine, error) {
	opts := append([]kmeansviz.Option{kmeansviz.WithConvergenceThreshold(t.Threshold)}, optFns...)
	eng := kmeansviz.New(opts...)

	if err := eng.Load(t.Points, t.Seeds); err != nil {
		return nil, err
	}
	if eng.K() != t.K {
		return nil, &ErrMismatch{Step: -1, Field: "k"}
	}

	for i, want := range t.Steps {
		if err := ctx.Err(); err != nil {
			return eng, err
		}

		got, err := eng.Step()
		if err != nil {
			return eng, err
		}
		if field := diff(want, got); field != "" {
			return eng, &ErrMismatch{Step: i, Field: field}
		}
	}

	return eng, nil
}

// diff names the first field in which a and b differ, or returns "".
func diff(a, b kmeansviz.StepResult) string {
	switch {
	case a.Phase != b.Phase:
		return "phase"
	case a.Iteration != b.Iteration:
		return "iteration"
	case a.Cursor != b.Cursor:
		return "cursor"
	case a.Point != b.Point:
		return "point"
	case a.Cluster != b.Cluster:
		return "cluster"
	case a.Nearest != b.Nearest:
		return "nearest"
	case a.Seed != b.Seed:
		return "seed"
	case !slices.Equal(a.Distances, b.Distances):
		return "distances"
	case a.MaxShift != b.MaxShift:
		return "maxShift"
	case a.EmptyClusters != b.EmptyClusters:
		return "emptyClusters"
	case !slices.Equal(a.Assignments, b.Assignments):
		return "assignments"
	case !slices.Equal(a.Centroids, b.Centroids):
		return "centroids"
	case a.Converged != b.Converged:
		return "converged"
	default:
		return ""
	}
}
