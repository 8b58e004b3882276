package trace

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/blobstore"
	"github.com/hupe1980/kmeansviz/model"
)

// Trace is a recorded run.
type Trace struct {
	K         int                    `json:"k"`
	Threshold float64                `json:"threshold"`
	Points    []model.Point          `json:"points"`
	Seeds     []int                  `json:"seeds"`
	Steps     []kmeansviz.StepResult `json:"steps"`
}

// Converged reports whether the last recorded step converged the run.
func (t *Trace) Converged() bool {
	return len(t.Steps) > 0 && t.Steps[len(t.Steps)-1].Converged
}

// Iterations returns the iteration count of the last recorded step.
func (t *Trace) Iterations() int {
	if len(t.Steps) == 0 {
		return 0
	}
	return t.Steps[len(t.Steps)-1].Iteration
}

// Source is the engine state a Recorder captures when a run starts.
// *kmeansviz.Engine implements it.
type Source interface {
	K() int
	Points() []model.Point
	Seeds() []int
	Threshold() float64
}

// Recorder collects the steps of one run. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	trace Trace
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin discards recorded steps and captures the dataset of a new run.
func (r *Recorder) Begin(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace = Trace{
		K:         src.K(),
		Threshold: src.Threshold(),
		Points:    src.Points(),
		Seeds:     src.Seeds(),
	}
}

// Record appends a step.
func (r *Recorder) Record(res kmeansviz.StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace.Steps = append(r.trace.Steps, res)
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trace.Steps)
}

// Trace returns a copy of the recording.
func (r *Recorder) Trace() *Trace {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &Trace{
		K:         r.trace.K,
		Threshold: r.trace.Threshold,
		Points:    model.ClonePoints(r.trace.Points),
		Seeds:     slices.Clone(r.trace.Seeds),
		Steps:     slices.Clone(r.trace.Steps),
	}
}

// Save encodes t and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, t *Trace, optFns ...func(o *Options)) error {
	data, err := Marshal(t, optFns...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("trace: save %s: %w", name, err)
	}
	return nil
}

// Load reads and decodes the trace stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Trace, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("trace: load %s: %w", name, err)
	}
	t, _, err := Unmarshal(data)
	return t, err
}
