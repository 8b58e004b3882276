package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PREFIX]",
		Short: "list recorded traces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			store, err := g.store.open(cmd.Context())
			if err != nil {
				return err
			}

			names, err := store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
