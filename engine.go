package kmeansviz

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/kmeansviz/internal/bitmap"
	"github.com/hupe1980/kmeansviz/internal/kmeans"
	"github.com/hupe1980/kmeansviz/model"
)

// Engine is the step-observable K-means clustering state machine.
//
// An Engine holds at most one run. Reset or Load replaces the run wholesale.
// Engine is not safe for concurrent use.
type Engine struct {
	opts options

	points      []model.Point
	centroids   []model.Point
	prev        []model.Point
	assignments []int
	seeds       []int
	seedSet     *bitmap.IndexSet

	state       IterationState
	initialized bool
}

// New creates an Engine without a run. Call Reset or Load before stepping.
func New(optFns ...Option) *Engine {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.rng == nil {
		opts.rng = newDefaultRand()
	}

	return &Engine{opts: opts}
}

// Reset starts a new run over n random points with k clusters.
//
// Coordinates are sampled independently from the configured bounds and the
// k seed indices are drawn uniformly without replacement. Seed i becomes the
// initial centroid of cluster i and stays assigned to cluster i for the run.
//
// Callers validate k and n with ValidateConfig first. Reset panics on invalid
// arguments.
func (e *Engine) Reset(k, n int) {
	if err := ValidateConfig(k, n); err != nil {
		panic(err)
	}

	span := e.opts.maxCoord - e.opts.minCoord
	points := make([]model.Point, n)
	for i := range points {
		points[i] = model.Point{
			X: e.opts.minCoord + e.opts.rng.Float64()*span,
			Y: e.opts.minCoord + e.opts.rng.Float64()*span,
		}
	}

	seeds := e.opts.rng.Perm(n)[:k]

	e.start(points, seeds)
}

// Load starts a new run over the given points, using seeds as the initial
// centroid indices (seeds[i] seeds cluster i).
//
// Unlike Reset, Load validates its input and reports violations as errors.
func (e *Engine) Load(points []model.Point, seeds []int) error {
	if err := ValidateConfig(len(seeds), len(points)); err != nil {
		return err
	}
	if err := validateSeeds(seeds, len(points)); err != nil {
		return err
	}

	e.start(model.ClonePoints(points), slices.Clone(seeds))
	return nil
}

func (e *Engine) start(points []model.Point, seeds []int) {
	k := len(seeds)

	e.points = points
	e.seeds = seeds
	e.seedSet = bitmap.NewIndexSet(seeds...)

	e.centroids = make([]model.Point, k)
	for c, idx := range seeds {
		e.centroids[c] = points[idx]
	}
	e.prev = model.ClonePoints(e.centroids)

	e.assignments = make([]int, len(points))
	for i := range e.assignments {
		e.assignments[i] = model.Unassigned
	}
	for c, idx := range seeds {
		e.assignments[idx] = c
	}

	e.state = IterationState{Phase: PhaseAssigning}
	e.initialized = true

	e.opts.logger.LogReset(k, len(points))
	e.opts.metricsCollector.RecordReset(k, len(points))
}

// Step performs the next step of the run: an assigning step or an updating
// step depending on the current phase. On a converged run Step is a no-op
// that reports the final state.
func (e *Engine) Step() (StepResult, error) {
	if !e.initialized {
		return StepResult{}, ErrNotInitialized
	}

	switch e.state.Phase {
	case PhaseAssigning:
		return e.StepAssign()
	case PhaseUpdating:
		return e.StepUpdate()
	default:
		return e.result(PhaseConverged), nil
	}
}

// StepAssign processes the point at the cursor.
//
// A non-seed point joins the cluster of its nearest centroid (ties go to the
// lowest cluster id). A seed point keeps its seed cluster. After the last
// point the engine moves to PhaseUpdating.
func (e *Engine) StepAssign() (StepResult, error) {
	if err := e.expect(PhaseAssigning); err != nil {
		return StepResult{}, err
	}

	start := time.Now()

	idx := e.state.Cursor
	nearest, dists := kmeans.Nearest(e.points[idx], e.centroids)

	seed := e.seedSet.Contains(idx)
	if !seed {
		e.assignments[idx] = nearest
	}

	e.state.Cursor++
	if e.state.Cursor == len(e.points) {
		e.state.Phase = PhaseUpdating
		e.state.Cursor = 0
	}

	res := e.result(PhaseAssigning)
	res.Point = idx
	res.Cluster = e.assignments[idx]
	res.Nearest = nearest
	res.Seed = seed
	res.Distances = dists

	e.opts.logger.LogAssign(idx, res.Cluster, seed)
	e.opts.metricsCollector.RecordAssign(time.Since(start))

	return res, nil
}

// StepUpdate recomputes every centroid, reassigns all non-seed points against
// the new centroids and tests convergence.
//
// A cluster without members keeps its centroid.
func (e *Engine) StepUpdate() (StepResult, error) {
	if err := e.expect(PhaseUpdating); err != nil {
		return StepResult{}, err
	}

	start := time.Now()

	copy(e.prev, e.centroids)
	counts := kmeans.Recenter(e.points, e.assignments, e.centroids)
	kmeans.AssignAll(e.points, e.centroids, e.assignments, e.seedSet.Contains)

	e.state.Iteration++

	maxShift := kmeans.MaxShift(e.prev, e.centroids)
	if maxShift < e.opts.threshold {
		e.state.Converged = true
		e.state.Phase = PhaseConverged
	} else {
		e.state.Phase = PhaseAssigning
	}
	e.state.Cursor = 0

	empty := 0
	for _, c := range counts {
		if c == 0 {
			empty++
		}
	}

	res := e.result(PhaseUpdating)
	res.MaxShift = maxShift
	res.EmptyClusters = empty

	e.opts.logger.LogUpdate(e.state.Iteration, maxShift, empty)
	e.opts.metricsCollector.RecordUpdate(time.Since(start), maxShift, empty)

	if e.state.Converged {
		e.opts.logger.LogConverged(e.state.Iteration)
		e.opts.metricsCollector.RecordConverged(e.state.Iteration)
	}

	return res, nil
}

// Run steps until the run converges, ctx is canceled or the iteration limit
// is hit. It returns the result of the last step performed.
func (e *Engine) Run(ctx context.Context) (StepResult, error) {
	if !e.initialized {
		return StepResult{}, ErrNotInitialized
	}

	res := e.result(e.state.Phase)

	for !e.state.Converged {
		if err := ctx.Err(); err != nil {
			e.opts.logger.LogRun(ctx, e.state.Iteration, err)
			return res, err
		}

		if e.opts.maxIterations > 0 && e.state.Iteration >= e.opts.maxIterations {
			e.opts.logger.LogRun(ctx, e.state.Iteration, ErrIterationLimit)
			return res, ErrIterationLimit
		}

		var err error
		if res, err = e.Step(); err != nil {
			return res, err
		}
	}

	e.opts.logger.LogRun(ctx, e.state.Iteration, nil)
	return res, nil
}

func (e *Engine) expect(phase Phase) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if e.state.Phase != phase {
		return &ErrPhaseMismatch{Expected: phase, Actual: e.state.Phase}
	}
	return nil
}

func (e *Engine) result(phase Phase) StepResult {
	return StepResult{
		Phase:       phase,
		Iteration:   e.state.Iteration,
		Cursor:      e.state.Cursor,
		Point:       -1,
		Cluster:     model.Unassigned,
		Nearest:     -1,
		Assignments: slices.Clone(e.assignments),
		Centroids:   model.ClonePoints(e.centroids),
		Converged:   e.state.Converged,
	}
}

// K returns the cluster count of the current run.
func (e *Engine) K() int { return len(e.seeds) }

// N returns the point count of the current run.
func (e *Engine) N() int { return len(e.points) }

// Points returns a copy of the dataset.
func (e *Engine) Points() []model.Point { return model.ClonePoints(e.points) }

// Centroids returns a copy of the current centroids.
func (e *Engine) Centroids() []model.Point { return model.ClonePoints(e.centroids) }

// PreviousCentroids returns a copy of the centroids before the last update.
func (e *Engine) PreviousCentroids() []model.Point { return model.ClonePoints(e.prev) }

// Assignments returns a copy of the per-point cluster ids.
// Unassigned points carry model.Unassigned.
func (e *Engine) Assignments() []int { return slices.Clone(e.assignments) }

// Seeds returns a copy of the seed indices; Seeds()[i] seeded cluster i.
func (e *Engine) Seeds() []int { return slices.Clone(e.seeds) }

// IsSeed reports whether point idx is a seed index of the current run.
func (e *Engine) IsSeed(idx int) bool { return e.seedSet.Contains(idx) }

// State returns the current iteration state.
func (e *Engine) State() IterationState { return e.state }

// Converged reports whether the current run has converged.
func (e *Engine) Converged() bool { return e.state.Converged }

// Initialized reports whether Reset or Load has been called.
func (e *Engine) Initialized() bool { return e.initialized }

// Threshold returns the convergence threshold on the squared centroid shift.
func (e *Engine) Threshold() float64 { return e.opts.threshold }
