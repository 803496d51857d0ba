package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"IssuanceSentinel/internal/model"
)

// Variant is one alternate policy evaluated by Sweep.
type Variant struct {
	Label  string
	Policy model.PolicyParameters
}

// Sweep evaluates every variant over the same height range in parallel. Each
// variant gets its own Runner and engine state; base supplies everything but
// the label and policy. Summaries are returned in variant order. The first
// failing variant cancels the rest.
func Sweep(ctx context.Context, base Options, variants []Variant, from, to uint64) ([]*model.RunSummary, error) {
	runners := make([]*Runner, len(variants))
	for i, v := range variants {
		opts := base
		opts.Label = v.Label
		opts.Policy = v.Policy
		r, err := New(opts)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Label, err)
		}
		runners[i] = r
	}

	sums := make([]*model.RunSummary, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range runners {
		i, r := i, r
		g.Go(func() error {
			sum, err := r.RunRange(gctx, from, to)
			sums[i] = sum
			if err != nil {
				return fmt.Errorf("variant %q: %w", variants[i].Label, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sums, err
	}
	return sums, nil
}
