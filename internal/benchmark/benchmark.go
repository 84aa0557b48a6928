// Package benchmark evaluates metrics over brain architectures.
//
// Each brain is driven through the same input sequence, one step per input:
//
//	feed -> compute -> learn (optional) -> record metrics
//
// and every metric is summarized once the sequence ends.
package benchmark

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/metrics"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/parallel"
)

// Results maps a metric name to its summary for one brain.
type Results map[string]metrics.Summary

// ProgressFunc is called after every step of every brain.
type ProgressFunc func(brainIdx, step int)

type options struct {
	learning bool
	progress ProgressFunc
	workers  int
}

// Option configures a Run.
type Option func(*options)

// WithLearning enables or disables learning after each step. Enabled by default.
func WithLearning(enabled bool) Option {
	return func(o *options) {
		o.learning = enabled
	}
}

// WithProgress reports each completed step to fn.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithWorkers evaluates up to n brains concurrently. Each brain then records
// into its own clones of the metrics, and ProgressFunc may be called from
// several goroutines. The default evaluates brains one at a time.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Benchmark runs a fixed set of metrics over brains.
type Benchmark[T any] struct {
	metrics []metrics.Metric
}

// New creates a benchmark evaluating ms.
func New[T any](ms ...metrics.Metric) *Benchmark[T] {
	return &Benchmark[T]{metrics: ms}
}

// Metrics returns the metrics evaluated.
func (b *Benchmark[T]) Metrics() []metrics.Metric {
	return b.metrics
}

// Run evaluates every brain on inputs and returns one Results per brain.
//
// Brains whose layers have no learning rule run without learning. The
// context is checked between steps. On error no results are returned.
func (b *Benchmark[T]) Run(ctx context.Context, brains []*brain.Brain[T], inputs []T, opts ...Option) ([]Results, error) {
	o := options{learning: true}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := parallel.Workers(o.workers)
	results := make([]Results, len(brains))
	err := parallel.For(len(brains), func(i int) error {
		ms := b.metrics
		if cfg.Parallel(len(brains)) {
			ms = clone(ms)
		}
		r, err := runBrain(ctx, i, brains[i], ms, inputs, o)
		if err != nil {
			return errors.WithMessagef(err, "brain #%d", i)
		}
		results[i] = r
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func clone(ms []metrics.Metric) []metrics.Metric {
	clones := make([]metrics.Metric, len(ms))
	for i, m := range ms {
		clones[i] = m.Clone()
	}
	return clones
}

func runBrain[T any](ctx context.Context, idx int, br *brain.Brain[T], ms []metrics.Metric, inputs []T, o options) (Results, error) {
	for _, m := range ms {
		m.Reset()
	}

	learn := o.learning
	for step, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := br.Feed(input); err != nil {
			return nil, errors.WithMessagef(err, "step %d: feed", step)
		}
		if _, err := br.Compute(); err != nil {
			return nil, errors.WithMessagef(err, "step %d: compute", step)
		}
		if learn {
			err := br.Learn()
			switch {
			case errors.Is(err, neuron.ErrNoLearning):
				klog.V(1).Infof("Brain #%d has no learning rule, running without learning", idx)
				learn = false
			case err != nil:
				return nil, errors.WithMessagef(err, "step %d: learn", step)
			}
		}
		for _, m := range ms {
			if err := m.Next(br.Neurons()); err != nil {
				return nil, errors.WithMessagef(err, "step %d: metric %s", step, m.Name())
			}
		}
		if o.progress != nil {
			o.progress(idx, step)
		}
	}

	results := make(Results, len(ms))
	for _, m := range ms {
		summary, err := m.Summary()
		if err != nil {
			return nil, errors.WithMessagef(err, "metric %s", m.Name())
		}
		results[m.Name()] = summary
		klog.V(1).Infof("Brain #%d - %s", idx, summary)
	}
	return results, nil
}
