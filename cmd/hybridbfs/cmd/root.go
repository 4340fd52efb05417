// Package cmd implements the hybridbfs command-line driver: load an el64
// edge list, build a graph, run one or more BFS trials, and report
// traversed-edge throughput.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/paperwasp/hybridbfs/bfs"
	hybridconfig "github.com/paperwasp/hybridbfs/config"
	"github.com/paperwasp/hybridbfs/edgelist"
	"github.com/paperwasp/hybridbfs/errs"
	"github.com/paperwasp/hybridbfs/graph"
	"github.com/paperwasp/hybridbfs/internal/lcg"
	"github.com/paperwasp/hybridbfs/logging"
	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/region"
)

var flags struct {
	graphFilename    string
	heavyThreshold   int64
	numTrials        int
	sourceVertex     int64
	algorithm        string
	alpha            float64
	beta             float64
	distributedLoad  bool
	checkGraph       bool
	checkResults     bool
	dumpEdgeList     bool
	dumpGraph        bool
	nodelets         int
	configPath       string
	metricsAddr      string
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "hybridbfs",
	Short: "Direction-optimizing BFS over an el64 edge list",
	Example: fmt.Sprintf("  %s --graph_filename graph.el64 --num_trials 8 --algorithm remote_writes_hybrid", binName()),
	RunE:  run,
}

func binName() string {
	if len(os.Args) == 0 {
		return "hybridbfs"
	}
	return os.Args[0]
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.graphFilename, "graph_filename", "", "path to an el64 edge list (required)")
	f.Int64Var(&flags.heavyThreshold, "heavy_threshold", 1<<62, "minimum degree for a vertex to use per-nodelet edge blocks")
	f.IntVar(&flags.numTrials, "num_trials", 1, "number of BFS trials to run")
	f.Int64Var(&flags.sourceVertex, "source_vertex", -1, "source vertex for BFS, or -1 to pick randomly each trial")
	f.StringVar(&flags.algorithm, "algorithm", string(bfs.RemoteWritesHybrid),
		"one of remote_writes, migrating_threads, remote_writes_hybrid, migrating_threads_hybrid")
	f.Float64Var(&flags.alpha, "alpha", 15, "top-down to bottom-up switch divisor")
	f.Float64Var(&flags.beta, "beta", 18, "bottom-up to top-down switch divisor")
	f.BoolVar(&flags.distributedLoad, "distributed_load", false, "load the edge list with per-nodelet parallel reads instead of a single local read")
	f.BoolVar(&flags.checkGraph, "check_graph", false, "validate graph structure after construction")
	f.BoolVar(&flags.checkResults, "check_results", false, "validate the BFS parent tree after each trial")
	f.BoolVar(&flags.dumpEdgeList, "dump_edge_list", false, "print every edge after loading")
	f.BoolVar(&flags.dumpGraph, "dump_graph", false, "print every vertex's adjacency after construction")
	f.IntVar(&flags.nodelets, "nodelets", runtime.NumCPU(), "number of simulated nodelets (memory partitions)")
	f.StringVar(&flags.configPath, "config", "", "optional config file overriding alpha/beta/heavy_threshold")
	f.StringVar(&flags.metricsAddr, "metrics_addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the run's duration")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := hybridconfig.Load(flags.configPath)
	if err != nil {
		return err
	}
	log := logging.New(logging.ParseLevel(cfg.LogLevel))

	if flags.graphFilename == "" {
		return errs.New(errs.KindUsage, "--graph_filename is required")
	}
	alg := bfs.Algorithm(flags.algorithm)
	switch alg {
	case bfs.RemoteWrites, bfs.MigratingThreads, bfs.RemoteWritesHybrid, bfs.MigratingThreadsHybrid:
	default:
		return errs.Newf(errs.KindUsage, "unrecognized --algorithm %q", flags.algorithm)
	}
	if flags.numTrials <= 0 {
		return errs.New(errs.KindUsage, "--num_trials must be positive")
	}

	heavyThreshold := flags.heavyThreshold
	if !cmd.Flags().Changed("heavy_threshold") {
		heavyThreshold = cfg.HeavyThreshold
	}
	alpha := flags.alpha
	if !cmd.Flags().Changed("alpha") {
		alpha = cfg.Alpha
	}
	beta := flags.beta
	if !cmd.Flags().Changed("beta") {
		beta = cfg.Beta
	}

	var registerer prometheus.Registerer
	if flags.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		registerer = reg
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: flags.metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server stopped: %v", err)
			}
		}()
		defer server.Close()
	}
	timer := region.NewTimer(registerer)

	rt, err := nodelet.NewRuntime(flags.nodelets)
	if err != nil {
		return errs.Wrap(errs.KindUsage, "building runtime", err)
	}

	span := timer.Begin("load_graph")
	var el *edgelist.EdgeList
	if flags.distributedLoad {
		el, err = edgelist.LoadDistributed(ctx, rt, flags.graphFilename)
	} else {
		el, err = edgelist.Load(ctx, rt, flags.graphFilename, edgelist.WithRegionTimer(timer))
	}
	span.End()
	if err != nil {
		return err
	}
	log.Info("loaded %d vertices, %d edges from %s", el.NumVertices, el.NumEdges, flags.graphFilename)

	if flags.dumpEdgeList {
		el.Dump(os.Stdout)
	}

	span = timer.Begin("construct_graph")
	g, err := graph.Build(ctx, rt, el, graph.WithHeavyThreshold(heavyThreshold), graph.WithRegionTimer(timer))
	span.End()
	if err != nil {
		return err
	}
	g.PrintDistribution(os.Stdout)

	if flags.dumpGraph {
		g.Dump(os.Stdout)
	}

	if flags.checkGraph {
		if err := graph.Check(g); err != nil {
			return err
		}
		if err := graph.CheckEdgeList(ctx, g, el); err != nil {
			return err
		}
		log.Info("graph check passed")
	}

	engine := bfs.NewEngine(g)
	rng := lcg.New(uint64(time.Now().UnixNano()))

	for trial := 0; trial < flags.numTrials; trial++ {
		source := flags.sourceVertex
		if source < 0 {
			source, err = pickRandomVertex(g, rng)
			if err != nil {
				return err
			}
		}

		if err := engine.Clear(ctx); err != nil {
			return err
		}

		span := timer.Begin("bfs")
		start := time.Now()
		res, err := engine.Run(ctx, source, bfs.WithAlgorithm(alg), bfs.WithAlpha(alpha), bfs.WithBeta(beta), bfs.WithRegionTimer(timer))
		elapsed := time.Since(start)
		span.End()
		if err != nil {
			return err
		}

		if flags.checkResults {
			if err := engine.Check(source); err != nil {
				return err
			}
		}

		traversed := engine.CountTraversedEdges()
		mteps := float64(traversed) / elapsed.Seconds() / 1e6
		log.Info("trial %d: source=%d levels=%d traversed_edges=%d time=%s mteps=%.3f",
			trial, source, res.Levels, traversed, elapsed, mteps)
	}

	return nil
}

// pickRandomVertex rejects zero-degree vertices, the analogue of
// pick_random_vertex.
func pickRandomVertex(g *graph.Graph, rng *lcg.State) (int64, error) {
	n := g.NumVertices()
	if n == 0 {
		return 0, errs.New(errs.KindUsage, "graph has no vertices")
	}
	for attempt := 0; attempt < 10000; attempt++ {
		v := rng.Int63n(n)
		if g.Degree(v) > 0 {
			return v, nil
		}
	}
	return 0, errs.New(errs.KindUsage, "could not find a non-isolated vertex after 10000 attempts")
}
