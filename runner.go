package recast

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner lets CastAll schedule work with any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// DefaultRunner returns the default implementation backed by errgroup.Group,
// gated to one task per CPU.
func DefaultRunner(ctx context.Context) Runner {
	return newErrGroupRunner(ctx, runtime.NumCPU())
}

// NewLimitedRunner creates a runner with bounded concurrency.
func NewLimitedRunner(ctx context.Context, maxConcurrency int) Runner {
	return newErrGroupRunner(ctx, maxConcurrency)
}

type errGroupRunner struct {
	eg *errgroup.Group
}

func newErrGroupRunner(parent context.Context, maxConcurrency int) *errGroupRunner {
	eg, _ := errgroup.WithContext(parent)
	eg.SetLimit(maxConcurrency)
	return &errGroupRunner{eg: eg}
}

func (r *errGroupRunner) Go(fn func() error) { r.eg.Go(fn) }

func (r *errGroupRunner) Wait() error { return r.eg.Wait() }
