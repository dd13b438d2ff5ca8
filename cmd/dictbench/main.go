// Command dictbench exercises the dict container. It replays workload
// scripts (the built-in scenarios, or a YAML file) and then runs timed
// benchmark trials, optionally printing the collected Prometheus metrics.
//
// Configuration is read from the environment:
//
//	DICTBENCH_ENTRIES   entries per trial (default 1000)
//	DICTBENCH_TRIALS    number of trials (default 4)
//	DICTBENCH_WORKERS   concurrent trials (default 4)
//	DICTBENCH_KEYS      seq or uuid (default seq)
//	DICTBENCH_WORKLOAD  "builtin", "none" or a path to a workload YAML file (default builtin)
//	DICTBENCH_METRICS   print metrics in Prometheus text format when done (default false)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/amp-labs/dict/dict"
	"github.com/amp-labs/dict/envutil"
	"github.com/amp-labs/dict/internal/bench"
	"github.com/amp-labs/dict/internal/workload"
	"github.com/amp-labs/dict/logger"
	"github.com/amp-labs/dict/metrics"
	"github.com/amp-labs/dict/script"
	"github.com/amp-labs/dict/should"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	defaultEntries = 1000
	defaultTrials  = 4
	defaultWorkers = 4

	exitWorkloadFailed = 2
)

var errWorkloadFailed = errors.New("workload expectations not met")

func main() {
	script.New("dictbench").Run(run)
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: must be positive, got %d", bench.ErrInvalidConfig, n)
	}

	return nil
}

func run(ctx context.Context) error {
	cfg := bench.Config{
		Entries: envutil.Int(ctx, "DICTBENCH_ENTRIES",
			envutil.Default(defaultEntries), envutil.Validate(positive)).ValueOrFatal(),
		Trials: envutil.Int(ctx, "DICTBENCH_TRIALS",
			envutil.Default(defaultTrials), envutil.Validate(positive)).ValueOrFatal(),
		Workers: envutil.Int(ctx, "DICTBENCH_WORKERS",
			envutil.Default(defaultWorkers), envutil.Validate(positive)).ValueOrFatal(),
		Keys: bench.KeyMode(envutil.String(ctx, "DICTBENCH_KEYS",
			envutil.Default(string(bench.KeysSequential))).ValueOrFatal()),
	}

	workloadSource := envutil.String(ctx, "DICTBENCH_WORKLOAD", envutil.Default("builtin")).ValueOrFatal()
	printMetrics := envutil.Bool(ctx, "DICTBENCH_METRICS", envutil.Default(false)).ValueOrFatal()

	log := logger.Get(ctx)

	reg := prometheus.NewRegistry()
	observer := metrics.NewObserver(reg)

	opts := []dict.Option{
		dict.WithObserver(observer),
		dict.WithLogger(log),
	}

	if err := replay(ctx, workloadSource, opts); err != nil {
		return err
	}

	start := time.Now()

	results, err := bench.Run(ctx, cfg, opts...)
	if err != nil {
		return script.ExitWithError(err)
	}

	for _, r := range results {
		log.Info("trial",
			"trial", r.Trial,
			"entries", r.Entries,
			"insert", r.Insert,
			"lookup", r.Lookup,
			"enumerate", r.Enumerate,
			"remove", r.Remove,
			"clear", r.Clear,
			"total", r.Total())
	}

	log.Info("bench finished", "trials", len(results), "workers", cfg.Workers, "elapsed", time.Since(start))

	if printMetrics {
		return writeMetrics(reg)
	}

	return nil
}

func loadScripts(source string) ([]workload.Script, error) {
	switch source {
	case "none", "":
		return nil, nil
	case "builtin":
		return workload.Scenarios()
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer should.Close(file, "failed to close workload file")

	s, err := workload.Load(file)
	if err != nil {
		return nil, err
	}

	return []workload.Script{s}, nil
}

func replay(ctx context.Context, source string, opts []dict.Option) error {
	scripts, err := loadScripts(source)
	if err != nil {
		return script.ExitWithError(err)
	}

	log := logger.Get(ctx)
	failed := 0

	for _, s := range scripts {
		report := workload.Run(ctx, s, opts...)

		if report.OK() {
			log.Info("workload passed", "workload", report.Name, "steps", report.Steps)

			continue
		}

		failed++

		for _, failure := range report.Failures {
			log.Error("workload step failed", "workload", report.Name, "failure", failure)
		}
	}

	if failed > 0 {
		return script.ExitWithCode(exitWorkloadFailed, fmt.Errorf("%w: %d of %d", errWorkloadFailed, failed, len(scripts)))
	}

	return nil
}

func writeMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}

	return nil
}
