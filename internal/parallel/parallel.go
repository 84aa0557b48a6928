// Package parallel runs independent work items on a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// Workers returns a config with n workers. n <= 1 runs sequentially.
func Workers(n int) Config {
	return Config{Enabled: n > 1, NumWorkers: max(n, 1)}
}

// Parallel reports whether For would start more than one goroutine for n items.
func (c Config) Parallel(n int) bool {
	return c.Enabled && c.NumWorkers > 1 && n > 1
}

// For calls f(i) for every i in [0, n).
//
// Once an item fails no new items are started, and the error of the lowest
// failing index is returned. Sequential execution stops at the first error.
func For(n int, f func(i int) error, cfg Config) error {
	if !cfg.Parallel(n) {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	var (
		next   atomic.Int64
		failed atomic.Bool
		wg     sync.WaitGroup
	)
	for range min(cfg.NumWorkers, n) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !failed.Load() {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				if err := f(i); err != nil {
					errs[i] = err
					failed.Store(true)
				}
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
