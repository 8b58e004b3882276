package kmeansviz

import (
	"fmt"

	"github.com/hupe1980/kmeansviz/model"
)

// Phase is the step kind the engine performs next.
type Phase uint8

const (
	// PhaseAssigning processes one point per step.
	PhaseAssigning Phase = iota
	// PhaseUpdating recomputes every centroid in a single step.
	PhaseUpdating
	// PhaseConverged is terminal; Step becomes a no-op.
	PhaseConverged
)

func (p Phase) String() string {
	switch p {
	case PhaseAssigning:
		return "assigning"
	case PhaseUpdating:
		return "updating"
	case PhaseConverged:
		return "converged"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if p > PhaseConverged {
		return nil, fmt.Errorf("invalid phase: %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "assigning":
		*p = PhaseAssigning
	case "updating":
		*p = PhaseUpdating
	case "converged":
		*p = PhaseConverged
	default:
		return fmt.Errorf("invalid phase: %q", text)
	}
	return nil
}

// IterationState is the position of the engine in its state machine.
type IterationState struct {
	// Iteration counts completed update steps.
	Iteration int `json:"iteration"`
	// Phase is the kind of the next step.
	Phase Phase `json:"phase"`
	// Cursor is the index of the point the next assigning step processes.
	Cursor int `json:"cursor"`
	// Converged is set once an update moved no centroid by the threshold or more.
	Converged bool `json:"converged"`
}

// StepResult describes one executed step.
//
// Slices are copies owned by the caller.
type StepResult struct {
	// Phase is the phase of the step that ran. PhaseConverged marks a no-op
	// step on a converged engine.
	Phase Phase `json:"phase"`
	// Iteration is the iteration count after the step.
	Iteration int `json:"iteration"`
	// Cursor is the cursor after the step.
	Cursor int `json:"cursor"`

	// Point is the index of the point processed by an assigning step, or -1.
	Point int `json:"point"`
	// Cluster is the cluster Point belongs to after the step, or -1.
	Cluster int `json:"cluster"`
	// Nearest is the argmin over Distances. It differs from Cluster only for
	// seed points, whose assignment is fixed.
	Nearest int `json:"nearest"`
	// Seed reports whether Point is a seed index.
	Seed bool `json:"seed,omitempty"`
	// Distances holds the squared distance from Point to each centroid.
	Distances []float64 `json:"distances,omitempty"`

	// MaxShift is the largest squared centroid displacement of an update step.
	MaxShift float64 `json:"maxShift,omitempty"`
	// EmptyClusters counts clusters without members at an update step.
	EmptyClusters int `json:"emptyClusters,omitempty"`

	Assignments []int         `json:"assignments"`
	Centroids   []model.Point `json:"centroids"`
	Converged   bool          `json:"converged"`
}
