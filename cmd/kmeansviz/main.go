// Command kmeansviz runs step-by-step K-means clustering in the terminal,
// records runs as traces and replays them.
//
//	kmeansviz run --clusters 4 --points 40 --delay 500ms --trace demo.kmtr
//	kmeansviz replay demo.kmtr
//	kmeansviz list
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/kmeansviz"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel string
	logJSON  bool
	store    storeFlags
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "kmeansviz",
		Short:         "Step through Lloyd's K-means clustering",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&g.logJSON, "log-json", false, "log as JSON instead of text")
	g.store.register(flags)

	root.AddCommand(
		newRunCmd(g),
		newReplayCmd(g),
		newListCmd(g),
	)

	return root
}

func (g *globalFlags) logger() (*kmeansviz.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	if g.logJSON {
		return kmeansviz.NewJSONLogger(level), nil
	}
	return kmeansviz.NewTextLogger(level), nil
}
