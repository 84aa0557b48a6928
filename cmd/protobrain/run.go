package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/protobrain/protobrain/internal/benchmark"
	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/experiment"
	"github.com/protobrain/protobrain/internal/metrics"
)

func runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML experiment to run.")
	learn := fs.Bool("learn", true, "Apply the learning rule after every step.")
	stepsLog := fs.Bool("steps-log", false, "Log the input and number of active neurons at every step.")
	verbose := fs.Bool("verbose", false, "Print every metric summary in full.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return errors.New("missing -config")
	}

	cfg, err := experiment.Load(*configPath)
	if err != nil {
		return err
	}
	exp, err := cfg.Build()
	if err != nil {
		return err
	}
	name := exp.Name
	if name == "" {
		name = *configPath
	}

	bar := newProgressBar(len(exp.Inputs), name)
	progress := func(_, step int) {
		if *stepsLog || klog.V(1).Enabled() {
			active := floats.Sum(exp.Brain.Neurons().Values().Data())
			klog.Infof("step %d: input=%g active=%g", step, exp.Inputs[step], active)
		}
		_ = bar.Add(1)
	}

	bench := benchmark.New[float64](metrics.NewSpikeDensity(), metrics.NewSpikeCount())
	results, err := bench.Run(ctx, []*brain.Brain[float64]{exp.Brain}, exp.Inputs,
		benchmark.WithLearning(*learn), benchmark.WithProgress(progress))
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Println(renderResults(name, []string{name}, len(exp.Inputs), results))
	if *verbose {
		for _, m := range bench.Metrics() {
			fmt.Println(results[0][m.Name()])
		}
	}
	return nil
}
