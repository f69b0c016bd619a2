// Command minesim runs a discrete-event simulation of a proof-of-work
// mining network and prints a per-miner summary.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/simlog"
	"github.com/larryruane/minesim/internal/simnet"
	"github.com/larryruane/minesim/internal/telemetry"
	"github.com/larryruane/minesim/internal/topology"
)

func main() {
	app := &cli.App{
		Name:  "minesim",
		Usage: "discrete-event simulator of a proof-of-work mining network",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "miners", Value: 3, Usage: "number of miners (ignored with --network)"},
			&cli.Float64Flag{Name: "days", Value: 1, Usage: "simulated duration, in days"},
			&cli.StringFlag{Name: "strategy", Value: "honest", Usage: "honest, bad, or selfish"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed"},
			&cli.Float64Flag{Name: "link-delay", Value: simnet.DefaultLinkDelay, Usage: "virtual seconds of propagation delay"},
			&cli.StringFlag{Name: "network", Usage: "path to a topology file"},
			&cli.BoolFlag{Name: "trace", Usage: "log every mined block and every dropped invalid block"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "if set, serve Prometheus metrics on this address (e.g. :9090) while the run executes"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "minesim:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	simlog.SetTrace(c.Bool("trace"))

	strategy, err := simnet.ParseStrategy(c.String("strategy"))
	if err != nil {
		return err
	}

	var sink telemetry.Sink = telemetry.Noop{}
	if addr := c.String("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		sink = telemetry.NewPrometheusSink(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				simlog.Error("metrics server stopped", simlog.Fields{"err": err.Error()})
			}
		}()
		simlog.Info("serving metrics", simlog.Fields{"addr": addr})
	}

	cfg := simnet.Config{
		NumMiners:    c.Int("miners"),
		DurationDays: c.Float64("days"),
		Strategy:     strategy,
		Seed:         c.Int64("seed"),
		LinkDelay:    c.Float64("link-delay"),
		Telemetry:    sink,
		IDAlloc:      idalloc.NewCounter(),
	}

	if path := c.String("network"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open network file: %w", err)
		}
		defer f.Close()
		spec, err := topology.Parse(f)
		if err != nil {
			return err
		}
		cfg.Topology = spec
	}

	report, err := simnet.Simulate(cfg)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(r *simnet.Report) {
	fmt.Printf("total-simtime %.2f\n", r.EndTime)
	for _, m := range r.Miners {
		fmt.Printf("miner %d mined %d chain-head %s height %d known-blocks %d\n",
			m.ID, m.TotalMined, m.ChainHeadHash, m.ChainHeadHeight, len(m.Blocks))
	}
}
