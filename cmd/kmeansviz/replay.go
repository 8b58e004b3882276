package main

import (
	"fmt"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/trace"
	"github.com/spf13/cobra"
)

func newReplayCmd(g *globalFlags) *cobra.Command {
	var show, verbose bool

	cmd := &cobra.Command{
		Use:   "replay NAME",
		Short: "load a trace, re-run it and check every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			logger, err := g.logger()
			if err != nil {
				return err
			}

			store, err := g.store.open(ctx)
			if err != nil {
				return err
			}
			t, err := trace.Load(ctx, store, args[0])
			if err != nil {
				return err
			}

			if show {
				for _, res := range t.Steps {
					printStep(out, t.Points, res, stateAfter(res, len(t.Points)), verbose)
				}
			}

			if _, err := trace.Replay(ctx, t, kmeansviz.WithLogger(logger)); err != nil {
				return err
			}

			fmt.Fprintf(out, "replayed %d steps of %s: k=%d, n=%d\n", len(t.Steps), args[0], t.K, len(t.Points))
			if len(t.Steps) == 0 {
				return nil
			}
			return printSummary(out, t.Points, t.Steps[len(t.Steps)-1])
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print every recorded step")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every centroid distance")

	return cmd
}

// stateAfter reconstructs the iteration state that followed a recorded step.
func stateAfter(res kmeansviz.StepResult, n int) kmeansviz.IterationState {
	state := kmeansviz.IterationState{
		Iteration: res.Iteration,
		Cursor:    res.Cursor,
		Converged: res.Converged,
	}
	switch {
	case res.Converged:
		state.Phase = kmeansviz.PhaseConverged
	case res.Phase == kmeansviz.PhaseAssigning && res.Point == n-1:
		state.Phase = kmeansviz.PhaseUpdating
	default:
		state.Phase = kmeansviz.PhaseAssigning
	}
	return state
}
