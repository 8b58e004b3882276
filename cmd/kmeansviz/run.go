package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/codec"
	"github.com/hupe1980/kmeansviz/driver"
	"github.com/hupe1980/kmeansviz/model"
	"github.com/hupe1980/kmeansviz/prom"
	"github.com/hupe1980/kmeansviz/trace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type runFlags struct {
	clusters    int
	points      int
	seed        int64
	delay       time.Duration
	quiet       bool
	verbose     bool
	trace       string
	compression string
	codec       string
	metricsAddr string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "cluster random points step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClustering(cmd, g, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.clusters, "clusters", kmeansviz.DefaultClusters, fmt.Sprintf("number of clusters %v", kmeansviz.ClusterCounts))
	flags.IntVar(&f.points, "points", kmeansviz.DefaultPoints, "number of random points")
	flags.Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flags.DurationVar(&f.delay, "delay", driver.DefaultDelays[driver.DefaultDelayIndex], "delay between steps (0 runs at full speed)")
	flags.BoolVar(&f.quiet, "quiet", false, "print only the final clustering")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "print every centroid distance")
	flags.StringVar(&f.trace, "trace", "", "save the run as a trace with this name")
	flags.StringVar(&f.compression, "compression", "zstd", "trace compression (none, lz4, zstd)")
	flags.StringVar(&f.codec, "codec", codec.Default.Name(), fmt.Sprintf("trace codec %v", codec.Names()))
	flags.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")

	return cmd
}

// delays returns a ladder whose current rung is d. Delays on the default
// ladder keep Faster/Slower meaningful.
func delays(d time.Duration) ([]time.Duration, int) {
	if i := slices.Index(driver.DefaultDelays, d); i >= 0 {
		return driver.DefaultDelays, i
	}
	return []time.Duration{d}, 0
}

func runClustering(cmd *cobra.Command, g *globalFlags, f *runFlags) error {
	if !slices.Contains(kmeansviz.ClusterCounts, f.clusters) {
		return fmt.Errorf("--clusters must be one of %v, got %d", kmeansviz.ClusterCounts, f.clusters)
	}
	if err := kmeansviz.ValidateConfig(f.clusters, f.points); err != nil {
		return err
	}
	if f.delay < 0 {
		return fmt.Errorf("--delay must not be negative, got %s", f.delay)
	}

	var traceOpts []func(*trace.Options)
	if f.trace != "" {
		comp, err := trace.ParseCompression(f.compression)
		if err != nil {
			return err
		}
		c, err := codec.Lookup(f.codec)
		if err != nil {
			return err
		}
		traceOpts = append(traceOpts, trace.WithCompression(comp), trace.WithCodec(c))
	}

	logger, err := g.logger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []kmeansviz.Option{kmeansviz.WithLogger(logger)}
	if f.seed != 0 {
		engineOpts = append(engineOpts, kmeansviz.WithSeed(f.seed))
	}

	basic := &kmeansviz.BasicMetricsCollector{}
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		engineOpts = append(engineOpts, kmeansviz.WithMetricsCollector(prom.NewCollector(reg)))

		shutdown := serveMetrics(f.metricsAddr, reg, logger)
		defer shutdown()
	} else {
		engineOpts = append(engineOpts, kmeansviz.WithMetricsCollector(basic))
	}

	eng := kmeansviz.New(engineOpts...)
	rec := trace.NewRecorder()
	out := cmd.OutOrStdout()

	var (
		last   kmeansviz.StepResult
		points []model.Point
	)
	ladder, rung := delays(f.delay)
	d := driver.New(eng, func(o *driver.Options) {
		o.Delays = ladder
		o.DelayIndex = rung
		o.Logger = logger
		o.OnReset = func(int, int) {
			rec.Begin(eng)
			points = eng.Points()
		}
		o.OnStep = func(res kmeansviz.StepResult) {
			rec.Record(res)
			last = res
			if !f.quiet {
				printStep(out, points, res, eng.State(), f.verbose)
			}
		}
	})

	if err := d.Reset(f.clusters, f.points); err != nil {
		return err
	}
	if err := d.Start(ctx); err != nil {
		return err
	}
	if err := d.Wait(); err != nil {
		return err
	}

	if err := printSummary(out, points, last); err != nil {
		return err
	}
	if f.metricsAddr == "" {
		stats := basic.GetStats()
		logger.Info("run stats",
			"assigns", stats.AssignCount,
			"updates", stats.UpdateCount,
			"assignAvg", time.Duration(stats.AssignAvgNanos),
			"updateAvg", time.Duration(stats.UpdateAvgNanos),
		)
	}

	if f.trace == "" {
		return nil
	}

	// The run may have been interrupted; the partial trace is still saved.
	store, err := g.store.open(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	if err := trace.Save(context.WithoutCancel(ctx), store, f.trace, rec.Trace(), traceOpts...); err != nil {
		return err
	}
	fmt.Fprintf(out, "trace saved: %s (%d steps)\n", f.trace, rec.Len())
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *kmeansviz.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
